package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcreedcmu/paperwork-game/pkg/game"
)

// keyMap holds the fixed bindings. Item bindings such as send or trash come
// from the game for the current menu selection.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Back     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	Kill     key.Binding
	Delete   key.Binding
	Enter    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Save     key.Binding
	Escape   key.Binding
	Copy     key.Binding
	Scroll   key.Binding
	ForceOut key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Select:   key.NewBinding(key.WithKeys("enter", "right"), key.WithHelp("enter/→", "select")),
		Back:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "back")),
		Left:     key.NewBinding(key.WithKeys("left")),
		Right:    key.NewBinding(key.WithKeys("right")),
		Home:     key.NewBinding(key.WithKeys("ctrl+a", "home")),
		End:      key.NewBinding(key.WithKeys("ctrl+e", "end")),
		Kill:     key.NewBinding(key.WithKeys("ctrl+k")),
		Delete:   key.NewBinding(key.WithKeys("backspace")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Scroll:   key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓/pgup/pgdn", "scroll")),
		ForceOut: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// menuHelp lists the fixed menu keys for the help line.
func (k keyMap) menuHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.ForceOut}
}

func (k keyMap) textHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Escape}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.Escape}
}

// actionForKey translates a key press into a game action for the top frame.
// ok is false when the key does nothing.
func actionForKey(s *game.State, keys keyMap, msg tea.KeyMsg) (game.Action, bool) {
	if key.Matches(msg, keys.ForceOut) {
		return game.Exit{}, true
	}

	switch f := s.Top().(type) {
	case *game.MenuFrame:
		return menuAction(s, f, keys, msg)
	case *game.TextEditFrame:
		return textAction(keys, msg)
	case *game.FormEditFrame:
		return formAction(keys, msg)
	case *game.DisplayFrame:
		if key.Matches(msg, keys.Scroll, keys.Copy) {
			return nil, false
		}
		return game.Back{}, true
	case *game.SkillsFrame, *game.DebugFrame:
		return game.Back{}, true
	}
	return nil, false
}

func menuAction(s *game.State, f *game.MenuFrame, keys keyMap, msg tea.KeyMsg) (game.Action, bool) {
	switch {
	case key.Matches(msg, keys.Up):
		return game.MenuPrev{}, true
	case key.Matches(msg, keys.Down):
		return game.MenuNext{}, true
	case key.Matches(msg, keys.Select):
		return game.MenuSelect{}, true
	case key.Matches(msg, keys.Back):
		return game.MaybeBack{}, true
	case key.Matches(msg, keys.Escape):
		return game.Exit{}, true
	}
	k := msg.String()
	if msg.Type == tea.KeySpace {
		k = " "
	}
	return s.Binding(f, k)
}

func textAction(keys keyMap, msg tea.KeyMsg) (game.Action, bool) {
	var op game.TextOp
	switch {
	case key.Matches(msg, keys.Left):
		op = game.TextLeft
	case key.Matches(msg, keys.Right):
		op = game.TextRight
	case key.Matches(msg, keys.Home):
		op = game.TextHome
	case key.Matches(msg, keys.End):
		op = game.TextEnd
	case key.Matches(msg, keys.Kill):
		op = game.TextKill
	case key.Matches(msg, keys.Delete):
		op = game.TextDeleteLeft
	case key.Matches(msg, keys.Enter):
		op = game.TextSubmit
	case key.Matches(msg, keys.Escape):
		return game.Back{}, true
	default:
		return insertRunes(msg, func(r rune) game.Action {
			return game.EditText{Op: game.TextInsert, Key: r}
		})
	}
	return game.EditText{Op: op}, true
}

func formAction(keys keyMap, msg tea.KeyMsg) (game.Action, bool) {
	var op game.FormOp
	switch {
	case key.Matches(msg, keys.Up):
		op = game.FormUp
	case key.Matches(msg, keys.Down):
		op = game.FormDown
	case key.Matches(msg, keys.Left):
		op = game.FormLeft
	case key.Matches(msg, keys.Right):
		op = game.FormRight
	case key.Matches(msg, keys.Home):
		op = game.FormHome
	case key.Matches(msg, keys.End):
		op = game.FormEnd
	case key.Matches(msg, keys.Kill):
		op = game.FormKill
	case key.Matches(msg, keys.Delete):
		op = game.FormDeleteLeft
	case key.Matches(msg, keys.Enter):
		op = game.FormEnter
	case key.Matches(msg, keys.Next):
		op = game.FormNextField
	case key.Matches(msg, keys.Prev):
		op = game.FormPrevField
	case key.Matches(msg, keys.Save):
		op = game.FormSave
	case key.Matches(msg, keys.Escape):
		return game.Back{}, true
	default:
		return insertRunes(msg, func(r rune) game.Action {
			return game.EditFormField{Op: game.FormInsert, Key: r}
		})
	}
	return game.EditFormField{Op: op}, true
}

// insertRunes turns typed or pasted characters into insert actions, one per
// rune, run in order.
func insertRunes(msg tea.KeyMsg, insert func(rune) game.Action) (game.Action, bool) {
	var runes []rune
	switch msg.Type {
	case tea.KeyRunes:
		runes = msg.Runes
	case tea.KeySpace:
		runes = []rune{' '}
	default:
		return nil, false
	}
	if len(runes) == 1 {
		return insert(runes[0]), true
	}
	seq := game.Seq{Actions: make([]game.Action, len(runes))}
	for i, r := range runes {
		seq.Actions[i] = insert(r)
	}
	return seq, true
}
