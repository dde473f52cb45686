package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

// MenuItem is one selectable row: a label and the action it performs.
type MenuItem struct {
	Label  string
	Action Action
}

// Binding attaches a menu item to a single key for the current selection.
type Binding struct {
	Key  string
	Item MenuItem
}

// BackLabel is the label of the row that leaves a container menu.
const BackLabel = "<-"

// MenuTitle returns the heading of a menu.
func (s *State) MenuTitle(m Menu) string {
	switch {
	case m.Kind == MenuMain:
		return "MAIN MENU"
	case m.Container == s.inbox:
		return "INBOX MENU"
	case m.Container == s.outbox:
		return "OUTBOX MENU"
	}
	return "CONTAINER MENU"
}

// MenuItems returns the rows currently offered by menu m.
func (s *State) MenuItems(m Menu) ([]MenuItem, error) {
	switch m.Kind {
	case MenuMain:
		return s.mainMenu(), nil
	case MenuRigid:
		return s.rigidMenu(m.Container)
	case MenuFlex:
		return s.flexMenu(m.Container)
	}
	return nil, fmt.Errorf("unknown menu %q", m.Kind)
}

func (s *State) mainMenu() []MenuItem {
	_, holding := s.store.Hand()
	items := []MenuItem{
		{Label: "sleep", Action: Sleep{}},
		{Label: "collect", Action: Collect{}},
	}
	if s.ledger.Has(resource.Bottle, 1) {
		items = append(items, MenuItem{Label: "recycle", Action: Recycle{}})
	}
	if s.ledger.Has(resource.Cash, s.content.FreedomPrice) {
		items = append(items, MenuItem{Label: "purchase freedom", Action: Purchase{}})
	}
	if s.canWriteLetter() {
		items = append(items, MenuItem{Label: "new letter", Action: NewLetter{}})
	}
	if n, _ := s.store.ContainerLen(s.inbox); n > 0 || holding {
		label := "inbox..."
		if unread := s.UnreadCount(s.inbox); unread > 0 {
			label = fmt.Sprintf("inbox (%d)...", unread)
		}
		items = append(items, MenuItem{Label: label, Action: EnterMenu{Menu: Menu{Kind: MenuFlex, Container: s.inbox}}})
	}
	if n, _ := s.store.ContainerLen(s.outbox); n > 0 || holding {
		items = append(items, MenuItem{Label: "outbox...", Action: EnterMenu{Menu: Menu{Kind: MenuFlex, Container: s.outbox}}})
	}
	items = append(items,
		MenuItem{Label: "skills", Action: EnterSkills{}},
		MenuItem{Label: "exit", Action: Exit{}},
	)
	return items
}

func (s *State) rigidMenu(c inventory.ItemID) ([]MenuItem, error) {
	slots, err := s.store.Slots(c)
	if err != nil {
		return nil, err
	}
	items := make([]MenuItem, 0, len(slots)+1)
	for ix, id := range slots {
		loc := inventory.RigidAt(c, ix)
		if id == inventory.None {
			var action Action = None{}
			if s.canDropInto(c) {
				action = Drop{Loc: loc}
			}
			items = append(items, MenuItem{Label: "---", Action: action})
			continue
		}
		item, err := s.itemRow(id, loc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return append(items, MenuItem{Label: BackLabel, Action: Back{}}), nil
}

func (s *State) flexMenu(c inventory.ItemID) ([]MenuItem, error) {
	contents, err := s.store.Slots(c)
	if err != nil {
		return nil, err
	}
	items := make([]MenuItem, 0, len(contents)+1)
	for ix, id := range contents {
		item, err := s.itemRow(id, inventory.FlexAt(c, ix))
		if err != nil {
			return nil, err
		}
		marker := "  "
		if s.unread[id] {
			marker = "! "
		}
		item.Label = marker + item.Label
		items = append(items, item)
	}
	return append(items, MenuItem{Label: BackLabel, Action: Back{}}), nil
}

// itemRow returns the menu row for item id sitting at loc.
func (s *State) itemRow(id inventory.ItemID, loc inventory.Location) (MenuItem, error) {
	p, err := s.store.Get(id)
	if err != nil {
		return MenuItem{}, err
	}
	inInbox := loc.Kind == inventory.Flex && loc.Container == s.inbox

	switch v := p.(type) {
	case *inventory.Letter:
		return MenuItem{Label: withMoney(v.Money, LetterLabel(v.Body)), Action: EditLetter{ID: id}}, nil
	case *inventory.Document:
		var action Action = DisplayDoc{ID: id}
		if inInbox {
			action = MarkRead{ID: id, Then: action}
		}
		return MenuItem{Label: DocumentLabel(v.Doc), Action: action}, nil
	case *inventory.Form:
		var action Action = EditForm{ID: id, Save: SaveRegularForm}
		if inInbox {
			action = MarkRead{ID: id, Then: action}
		}
		return MenuItem{Label: withMoney(v.Money, string(v.Form)), Action: action}, nil
	case *inventory.Envelope:
		return MenuItem{Label: EnvelopeLabel(v), Action: EnterMenu{Menu: Menu{Kind: MenuRigid, Container: id}}}, nil
	case *inventory.RigidContainer:
		return MenuItem{Label: "box", Action: EnterMenu{Menu: Menu{Kind: MenuRigid, Container: id}}}, nil
	case *inventory.FlexContainer:
		return MenuItem{Label: "container", Action: EnterMenu{Menu: Menu{Kind: MenuFlex, Container: id}}}, nil
	case *inventory.Stack:
		return MenuItem{Label: StackLabel(v), Action: PickupPart{Loc: loc, Amount: inventory.One, SoftFail: true}}, nil
	}
	return MenuItem{}, fmt.Errorf("%w: id %d", inventory.ErrWrongVariant, id)
}

// ItemLabel returns the label an item shows in menus, outside the inbox.
func (s *State) ItemLabel(id inventory.ItemID) (string, error) {
	row, err := s.itemRow(id, inventory.Location{})
	if err != nil {
		return "", err
	}
	return row.Label, nil
}

// canDropInto reports whether the held item may go into container c.
func (s *State) canDropInto(c inventory.ItemID) bool {
	h, holding := s.store.Hand()
	return holding && !s.store.Contains(h, c)
}

// selection returns the location under the cursor of a container menu and
// the item there, or inventory.None for an empty slot. ok is false on the
// main menu and on rows that are not positions (the rigid back row).
func (s *State) selection(f *MenuFrame) (loc inventory.Location, id inventory.ItemID, ok bool) {
	c := f.Menu.Container
	switch f.Menu.Kind {
	case MenuRigid:
		slots, err := s.store.Slots(c)
		if err != nil || f.Index >= len(slots) {
			return inventory.Location{}, inventory.None, false
		}
		return inventory.RigidAt(c, f.Index), slots[f.Index], true
	case MenuFlex:
		contents, err := s.store.Slots(c)
		if err != nil || f.Index > len(contents) {
			return inventory.Location{}, inventory.None, false
		}
		if f.Index == len(contents) {
			return inventory.FlexAt(c, f.Index), inventory.None, true
		}
		return inventory.FlexAt(c, f.Index), contents[f.Index], true
	}
	return inventory.Location{}, inventory.None, false
}

// Bindings returns the extra keys offered for the selected row of f, sorted
// by key.
func (s *State) Bindings(f *MenuFrame) []Binding {
	bind := make(map[string]MenuItem)
	if f.Menu.Kind == MenuMain {
		bind["d"] = MenuItem{Label: "debug", Action: EnterDebug{}}
		return sortBindings(bind)
	}

	loc, id, ok := s.selection(f)
	if !ok {
		return nil
	}
	_, holding := s.store.Hand()

	if id == inventory.None {
		if s.canDropInto(loc.Container) {
			bind[" "] = MenuItem{Label: "drop", Action: Drop{Loc: loc}}
		}
		return sortBindings(bind)
	}

	p, err := s.store.Get(id)
	if err != nil {
		return nil
	}
	inOutbox := loc.Kind == inventory.Flex && loc.Container == s.outbox

	switch v := p.(type) {
	case *inventory.Letter:
		bind["e"] = MenuItem{Label: "edit", Action: EditLetter{ID: id}}
		if !inOutbox {
			bind["s"] = MenuItem{Label: "send", Action: Send{ID: id}}
		}
	case *inventory.Form:
		if !inOutbox {
			bind["s"] = MenuItem{Label: "send", Action: Send{ID: id}}
		}
	case *inventory.Envelope:
		bind["a"] = MenuItem{Label: "address", Action: EditForm{ID: id, Save: SaveEnvelopeAddress}}
		if !inOutbox {
			bind["s"] = MenuItem{Label: "send", Action: Send{ID: id}}
		}
	case *inventory.Stack:
		if !holding {
			if _, discrete := inventory.DiscreteForm(v.Resource); discrete {
				bind["1"] = MenuItem{Label: "take one", Action: PickupPart{Loc: loc, Amount: inventory.One}}
			}
			bind["2"] = MenuItem{Label: "take half", Action: PickupPart{Loc: loc, Amount: inventory.Half}}
		}
	}

	if holding {
		if loc.Kind == inventory.Flex && s.canDropInto(loc.Container) {
			bind[" "] = MenuItem{Label: "drop", Action: Drop{Loc: loc}}
		}
	} else {
		bind[" "] = MenuItem{Label: "pickup", Action: Pickup{Loc: loc}}
	}
	bind["t"] = MenuItem{Label: "trash", Action: Trash{Loc: loc}}
	if inventory.CanHoldMoney(p) {
		bind["+"] = MenuItem{Label: "add money", Action: AddMoney{ID: id}}
		bind["-"] = MenuItem{Label: "remove money", Action: RemoveMoney{ID: id}}
	}
	return sortBindings(bind)
}

func sortBindings(m map[string]MenuItem) []Binding {
	out := make([]Binding, 0, len(m))
	for k, item := range m {
		out = append(out, Binding{Key: k, Item: item})
	}
	slices.SortFunc(out, func(a, b Binding) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

// Binding returns the action bound to key for the selection of f.
func (s *State) Binding(f *MenuFrame, key string) (Action, bool) {
	for _, b := range s.Bindings(f) {
		if b.Key == key {
			return b.Item.Action, true
		}
	}
	return nil, false
}

func (s *State) moveSelection(delta int) error {
	f, ok := s.Top().(*MenuFrame)
	if !ok {
		return fmt.Errorf("%w: menu navigation in %s", ErrWrongFrame, s.Top().Kind())
	}
	items, err := s.MenuItems(f.Menu)
	if err != nil {
		return err
	}
	n := len(items)
	f.Index = ((f.Index+delta)%n + n) % n
	return nil
}

func (s *State) menuSelect() ([]Action, error) {
	f, ok := s.Top().(*MenuFrame)
	if !ok {
		return nil, fmt.Errorf("%w: menu select in %s", ErrWrongFrame, s.Top().Kind())
	}
	items, err := s.MenuItems(f.Menu)
	if err != nil {
		return nil, err
	}
	f.Index = min(f.Index, len(items)-1)
	return []Action{items[f.Index].Action}, nil
}
