package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jcreedcmu/paperwork-game/internal/session"
	"github.com/jcreedcmu/paperwork-game/pkg/game"
	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

const (
	logLines      = 10
	sidePanelWide = 28
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	sessions *session.Manager
	gameID   uuid.UUID
	logger   *slog.Logger
	keys     keyMap
	help     help.Model
	printer  *message.Printer
	docView  viewport.Model
	docID    inventory.ItemID // document loaded in docView
	width    int
	height   int
	status   string
	err      error
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	unreadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	winStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 4).
			Bold(true)
)

func NewConsoleUI(sessions *session.Manager, gameID uuid.UUID, logger *slog.Logger) ConsoleUI {
	return ConsoleUI{
		sessions: sessions,
		gameID:   gameID,
		logger:   logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		printer:  message.NewPrinter(language.English),
		docView:  viewport.New(0, 0),
		docID:    inventory.None,
	}
}

// layout returns the size of the main panel's content area.
func (m ConsoleUI) layout() (mainWidth, bodyHeight int) {
	return max(m.width-sidePanelWide-6, 20), max(m.height-logLines-6, 5)
}

// syncDocument loads the document of a display frame into docView when a
// different document comes to the top.
func (m *ConsoleUI) syncDocument(s *game.State) {
	f, ok := s.Top().(*game.DisplayFrame)
	if !ok {
		m.docID = inventory.None
		return
	}
	if f.Doc == m.docID {
		return
	}
	text, err := documentText(s, f.Doc)
	if err != nil {
		text = err.Error()
	}
	m.docID = f.Doc
	m.docView.SetContent(wordwrap.String(text, m.docView.Width))
	m.docView.GotoTop()
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		mainWidth, bodyHeight := m.layout()
		m.docView.Width = mainWidth - 2
		m.docView.Height = max(bodyHeight-3, 1)
		m.docID = inventory.None
		_ = m.sessions.View(m.gameID, func(s *game.State) error {
			m.syncDocument(s)
			return nil
		})
		return m, nil

	case tea.KeyMsg:
		if m.err != nil {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	var (
		action game.Action
		ok     bool
		won    bool
		scroll bool
		copied string
	)
	err := m.sessions.View(m.gameID, func(s *game.State) error {
		if s.Won() {
			won = true
			return nil
		}
		m.syncDocument(s)
		if f, isDisplay := s.Top().(*game.DisplayFrame); isDisplay {
			switch {
			case key.Matches(msg, m.keys.Copy):
				text, err := documentText(s, f.Doc)
				if err != nil {
					return err
				}
				copied = text
				return nil
			case key.Matches(msg, m.keys.Scroll):
				scroll = true
				return nil
			}
		}
		action, ok = actionForKey(s, m.keys, msg)
		return nil
	})
	if err != nil {
		m.err = err
		return m, nil
	}
	if won {
		return m, tea.Quit
	}
	if scroll {
		var cmd tea.Cmd
		m.docView, cmd = m.docView.Update(msg)
		return m, cmd
	}
	if copied != "" {
		if err := clipboard.WriteAll(copied); err != nil {
			m.logger.Warn("Failed to copy document", "error", err)
			m.status = "Could not copy to clipboard."
		} else {
			m.status = "Copied to clipboard."
		}
		return m, nil
	}
	if !ok {
		return m, nil
	}

	if err := m.sessions.Dispatch(context.Background(), m.gameID, action); err != nil {
		m.logger.Error("Dispatch failed", "action", action.Name(), "error", err)
		m.err = err
		return m, nil
	}

	var exited bool
	_ = m.sessions.View(m.gameID, func(s *game.State) error {
		exited = s.Exited()
		m.syncDocument(s)
		return nil
	})
	if exited {
		return m, tea.Quit
	}
	return m, nil
}

func (m ConsoleUI) View() string {
	if m.width == 0 || m.height == 0 {
		return "\n  Initializing..."
	}
	if m.err != nil {
		return errorStyle.Render(wordwrap.String("The game stopped: "+m.err.Error(), m.width-2)) +
			"\n\n" + promptStyle.Render("Press any key to quit.")
	}

	var out string
	err := m.sessions.View(m.gameID, func(s *game.State) error {
		if s.Won() {
			banner := winStyle.Render("You purchased your freedom!\n\n" +
				m.printer.Sprintf("It took you %d ticks.", s.Time()))
			out = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, banner)
			return nil
		}
		out = m.render(s)
		return nil
	})
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return out
}

func (m ConsoleUI) render(s *game.State) string {
	mainWidth, bodyHeight := m.layout()

	var body string
	switch f := s.Top().(type) {
	case *game.MenuFrame:
		body = m.renderMenu(s, f)
	case *game.TextEditFrame:
		body = m.renderTextEdit(f, mainWidth)
	case *game.FormEditFrame:
		body = m.renderFormEdit(f)
	case *game.DisplayFrame:
		m.syncDocument(s)
		body = m.renderDisplay()
	case *game.SkillsFrame:
		body = renderSkills(s)
	case *game.DebugFrame:
		body = m.renderDebug(s)
	}

	mainPanel := panelStyle.Width(mainWidth).Height(bodyHeight).Render(body)
	sidePanel := panelStyle.Width(sidePanelWide).Height(bodyHeight).Render(m.renderSide(s))
	top := lipgloss.JoinHorizontal(lipgloss.Top, mainPanel, sidePanel)

	logPanel := panelStyle.Width(m.width - 4).Render(m.renderLog(s, m.width-8))
	return lipgloss.JoinVertical(lipgloss.Left, top, logPanel)
}

func (m ConsoleUI) renderMenu(s *game.State, f *game.MenuFrame) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.MenuTitle(f.Menu)) + "\n\n")

	items, err := s.MenuItems(f.Menu)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	for i, it := range items {
		label := it.Label
		if strings.HasPrefix(label, "! ") {
			label = unreadStyle.Render(label)
		}
		if i == f.Index {
			b.WriteString(selectedStyle.Render("▶ "+it.Label) + "\n")
		} else {
			b.WriteString("  " + label + "\n")
		}
	}

	if bindings := s.Bindings(f); len(bindings) > 0 {
		b.WriteString("\n")
		parts := make([]string, len(bindings))
		for i, bd := range bindings {
			k := bd.Key
			if k == " " {
				k = "space"
			}
			parts[i] = labelStyle.Render("["+k+"]") + " " + bd.Item.Label
		}
		b.WriteString(strings.Join(parts, "  ") + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.menuHelp()))
	return b.String()
}

// withCursor renders text with the rune at cursor highlighted.
func withCursor(text string, cursor int) string {
	r := []rune(text)
	cursor = min(max(cursor, 0), len(r))
	if cursor == len(r) {
		return string(r) + cursorStyle.Render(" ")
	}
	return string(r[:cursor]) + cursorStyle.Render(string(r[cursor])) + string(r[cursor+1:])
}

func (m ConsoleUI) renderTextEdit(f *game.TextEditFrame, width int) string {
	title := "EDIT LETTER"
	if f.Target == inventory.None {
		title = "NEW LETTER"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(wordwrap.String(withCursor(f.Text, f.Cursor), width-2) + "\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.textHelp()))
	return b.String()
}

func (m ConsoleUI) renderFormEdit(f *game.FormEditFrame) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FORM "+string(f.Form)) + "\n\n")
	for i, label := range f.Layout {
		value := ""
		if i < len(f.Fields) {
			value = f.Fields[i]
		}
		if i == f.Field {
			b.WriteString(selectedStyle.Render("▶ "+label+":") + " " + withCursor(value, f.Cursor) + "\n")
		} else {
			b.WriteString("  " + labelStyle.Render(label+":") + " " + value + "\n")
		}
	}
	b.WriteString("\n")
	if f.OnSave() {
		b.WriteString(selectedStyle.Render("[SAVE]"))
	} else {
		b.WriteString(" [SAVE]")
	}
	b.WriteString("\n\n" + m.help.ShortHelpView(m.keys.formHelp()))
	return b.String()
}

func documentText(s *game.State, id inventory.ItemID) (string, error) {
	p, err := s.Item(id)
	if err != nil {
		return "", err
	}
	doc, ok := p.(*inventory.Document)
	if !ok {
		return "", fmt.Errorf("%w: item %d is not a document", inventory.ErrWrongVariant, id)
	}
	return s.DocumentText(doc.Doc), nil
}

func (m ConsoleUI) renderDisplay() string {
	footer := m.help.ShortHelpView([]key.Binding{
		m.keys.Scroll,
		m.keys.Copy,
		key.NewBinding(key.WithKeys("any"), key.WithHelp("any key", "return")),
	})
	if m.status != "" {
		footer = promptStyle.Render(m.status)
	}
	return m.docView.View() + "\n\n" + footer
}

func renderSkills(s *game.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SKILLS") + "\n\n")
	for _, sl := range s.Skills().Known() {
		fmt.Fprintf(&b, "%-12s %d\n", sl.Skill, sl.Level)
	}
	b.WriteString("\n" + promptStyle.Render("Press any key to return."))
	return b.String()
}

func (m ConsoleUI) renderDebug(s *game.State) string {
	st := s.Stats()
	var b strings.Builder
	b.WriteString(titleStyle.Render("DEBUG") + "\n\n")
	b.WriteString(m.printer.Sprintf("time       %d\n", st.Time))
	b.WriteString(m.printer.Sprintf("items      %d\n", st.Items))
	b.WriteString(m.printer.Sprintf("next id    %d\n", int(st.NextID)))
	b.WriteString(m.printer.Sprintf("futures    %d\n", st.Futures))
	b.WriteString(m.printer.Sprintf("frames     %d\n", st.Frames))
	b.WriteString(m.printer.Sprintf("log lines  %d\n", st.LogLines))
	b.WriteString(m.printer.Sprintf("unread     %d\n", st.Unread))
	if trace := s.Trace(); len(trace) > 0 {
		b.WriteString("\nlast dispatch: " + strings.Join(trace, " → ") + "\n")
	}
	b.WriteString("\n" + promptStyle.Render("Press any key to return."))
	return b.String()
}

func (m ConsoleUI) renderSide(s *game.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("RESOURCES") + "\n")
	b.WriteString(m.printer.Sprintf("Time: %d\n\n", s.Time()))
	for _, k := range resource.All {
		n := s.Resource(k)
		if n == 0 && k != resource.Cash {
			continue
		}
		if k == resource.Cash {
			b.WriteString(m.printer.Sprintf("%-10s $%d\n", k.Label(), n))
		} else {
			b.WriteString(m.printer.Sprintf("%-10s %d\n", k.Label(), n))
		}
	}

	b.WriteString("\n" + titleStyle.Render("HAND") + "\n")
	if h, holding := s.Hand(); holding {
		label, err := s.ItemLabel(h)
		if err != nil {
			label = errorStyle.Render(err.Error())
		}
		b.WriteString(wordwrap.String(label, sidePanelWide-2) + "\n")
	} else {
		b.WriteString(promptStyle.Render("(empty)") + "\n")
	}

	if n := len(s.Futures()); n > 0 {
		b.WriteString("\n" + promptStyle.Render(m.printer.Sprintf("%d deliveries pending", n)) + "\n")
	}
	return b.String()
}

func (m ConsoleUI) renderLog(s *game.State, width int) string {
	lines := s.Log(logLines)
	if len(lines) == 0 {
		return promptStyle.Render("Nothing has happened yet.")
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		stamp := promptStyle.Render(m.printer.Sprintf("[%d]", l.Time))
		out[i] = stamp + " " + wordwrap.String(l.Msg, max(width-8, 10))
	}
	return strings.Join(out, "\n")
}
