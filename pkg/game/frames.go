package game

import (
	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
)

// FrameKind names a navigation frame variant.
type FrameKind string

const (
	FrameMenu     FrameKind = "menu"
	FrameTextEdit FrameKind = "text-edit"
	FrameFormEdit FrameKind = "form-edit"
	FrameDisplay  FrameKind = "display"
	FrameSkills   FrameKind = "skills"
	FrameDebug    FrameKind = "debug"
)

// Frame is one entry of the navigation stack.
type Frame interface {
	Kind() FrameKind
}

// MenuKind says which menu a menu frame shows.
type MenuKind string

const (
	MenuMain  MenuKind = "main"
	MenuRigid MenuKind = "rigid"
	MenuFlex  MenuKind = "flex"
)

// Menu identifies a menu. Container is inventory.None for the main menu.
type Menu struct {
	Kind      MenuKind
	Container inventory.ItemID
}

// MainMenu is the root menu.
var MainMenu = Menu{Kind: MenuMain, Container: inventory.None}

// MenuFrame shows a menu with one selected row.
type MenuFrame struct {
	Menu  Menu
	Index int
}

// TextEditFrame edits a letter body. Target is inventory.None while writing
// a new letter. Cursor counts runes.
type TextEditFrame struct {
	Target inventory.ItemID
	Text   string
	Cursor int
}

// SaveCont says where a form editor writes its fields on save.
type SaveCont string

const (
	SaveRegularForm     SaveCont = "regular-form"
	SaveEnvelopeAddress SaveCont = "envelope-address"
)

// FormEditFrame edits the fields of a form. Field ranges over the layout
// plus one extra position for the SAVE button.
type FormEditFrame struct {
	Target inventory.ItemID
	Form   inventory.FormKind
	Layout []string
	Fields []string
	Field  int
	Cursor int
	Save   SaveCont
}

// OnSave reports whether the SAVE button is selected.
func (f *FormEditFrame) OnSave() bool {
	return f.Field >= len(f.Layout)
}

// DisplayFrame shows a document item.
type DisplayFrame struct {
	Doc inventory.ItemID
}

// SkillsFrame shows the skills sheet.
type SkillsFrame struct{}

// DebugFrame shows engine counters.
type DebugFrame struct{}

func (*MenuFrame) Kind() FrameKind     { return FrameMenu }
func (*TextEditFrame) Kind() FrameKind { return FrameTextEdit }
func (*FormEditFrame) Kind() FrameKind { return FrameFormEdit }
func (*DisplayFrame) Kind() FrameKind  { return FrameDisplay }
func (*SkillsFrame) Kind() FrameKind   { return FrameSkills }
func (*DebugFrame) Kind() FrameKind    { return FrameDebug }

// FormLayout returns the field labels of a form kind.
func FormLayout(k inventory.FormKind) []string {
	switch k {
	case inventory.FormSTO001:
		return []string{"pencils (qty)", "paper (qty)", "radio (qty)"}
	case inventory.FormENV001:
		return []string{"envelopes (qty)", "payment enclosed ($)"}
	case inventory.FormEnvelopeAddress:
		return []string{"address"}
	}
	return nil
}
