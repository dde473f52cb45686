package game

import (
	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

// Action is one command for the reducer. The set of actions is closed; only
// types declared in this package implement it.
type Action interface {
	Name() string
	isAction()
}

// None does nothing. Menu rows with nothing to do carry it.
type None struct{}

// Sleep advances time by one tick.
type Sleep struct{}

// Collect finds one unit of a random collectable resource and advances time.
type Collect struct{}

// Recycle turns every bottle into one cash and advances time.
type Recycle struct{}

// Purchase spends the freedom price and wins the game.
type Purchase struct{}

// Exit ends the session.
type Exit struct{}

// Back pops the active frame. Popping the root frame is a hard failure.
type Back struct{}

// MaybeBack pops the active frame unless it is the root.
type MaybeBack struct{}

// EnterMenu pushes a menu frame.
type EnterMenu struct {
	Menu Menu
}

// EnterSkills pushes the skills view.
type EnterSkills struct{}

// EnterDebug pushes the debug view.
type EnterDebug struct{}

// DisplayDoc pushes a document display frame for a document item.
type DisplayDoc struct {
	ID inventory.ItemID
}

// NewLetter opens a text editor for a letter that does not exist yet.
type NewLetter struct{}

// EditLetter opens a text editor on an existing letter.
type EditLetter struct {
	ID inventory.ItemID
}

// SetLetterText stores text as a letter body. With ID equal to
// inventory.None a new letter is written, consuming one paper, and put in the
// inbox.
type SetLetterText struct {
	ID   inventory.ItemID
	Text string
}

// EditForm opens a form editor. With Save set to SaveEnvelopeAddress the
// target is an envelope and the single field edits its address.
type EditForm struct {
	ID   inventory.ItemID
	Save SaveCont
}

// SaveForm writes edited field values back to the target item.
type SaveForm struct {
	ID     inventory.ItemID
	Fields []string
	Save   SaveCont
}

// Send moves a located item to the end of the outbox.
type Send struct {
	ID inventory.ItemID
}

// AddItems creates items and appends them to the inbox.
type AddItems struct {
	Items  []inventory.Payload
	Unread bool
}

// Grant adds a quantity of a resource to the ledger.
type Grant struct {
	Resource resource.Kind
	Quantity int
}

// Pickup moves the item at Loc into the hand.
type Pickup struct {
	Loc inventory.Location
}

// Drop moves the held item to Loc.
type Drop struct {
	Loc inventory.Location
}

// PickupPart splits the stack at Loc and holds the taken part. With SoftFail
// set, a full hand or a resource with no single-unit form makes it a no-op.
type PickupPart struct {
	Loc      inventory.Location
	Amount   inventory.Division
	SoftFail bool
}

// Trash destroys the item at Loc and everything inside it.
type Trash struct {
	Loc inventory.Location
}

// AddMoney moves one cash onto a letter or form.
type AddMoney struct {
	ID inventory.ItemID
}

// RemoveMoney moves one cash from a letter or form back to the ledger.
type RemoveMoney struct {
	ID inventory.ItemID
}

// MarkRead clears the unread flag of ID and then performs Then.
type MarkRead struct {
	ID   inventory.ItemID
	Then Action
}

// WithMessage logs Msg and then performs Then.
type WithMessage struct {
	Msg  string
	Then Action
}

// Schedule queues Then as a future Delay ticks from now.
type Schedule struct {
	Delay int
	Then  Action
}

// Seq performs its actions in order, each one completely before the next.
type Seq struct {
	Actions []Action
}

// MenuNext moves the menu selection down, wrapping.
type MenuNext struct{}

// MenuPrev moves the menu selection up, wrapping.
type MenuPrev struct{}

// MenuSelect performs the action of the selected menu row.
type MenuSelect struct{}

// EditText applies one editing operation to the active text editor.
type EditText struct {
	Op  TextOp
	Key rune
}

// EditFormField applies one editing operation to the active form editor.
type EditFormField struct {
	Op  FormOp
	Key rune
}

func (None) Name() string          { return "none" }
func (Sleep) Name() string         { return "sleep" }
func (Collect) Name() string       { return "collect" }
func (Recycle) Name() string       { return "recycle" }
func (Purchase) Name() string      { return "purchase" }
func (Exit) Name() string          { return "exit" }
func (Back) Name() string          { return "back" }
func (MaybeBack) Name() string     { return "maybe-back" }
func (EnterMenu) Name() string     { return "enter-menu" }
func (EnterSkills) Name() string   { return "enter-skills" }
func (EnterDebug) Name() string    { return "enter-debug" }
func (DisplayDoc) Name() string    { return "display-doc" }
func (NewLetter) Name() string     { return "new-letter" }
func (EditLetter) Name() string    { return "edit-letter" }
func (SetLetterText) Name() string { return "set-letter-text" }
func (EditForm) Name() string      { return "edit-form" }
func (SaveForm) Name() string      { return "save-form" }
func (Send) Name() string          { return "send" }
func (AddItems) Name() string      { return "add-items" }
func (Grant) Name() string         { return "grant" }
func (Pickup) Name() string        { return "pickup" }
func (Drop) Name() string          { return "drop" }
func (PickupPart) Name() string    { return "pickup-part" }
func (Trash) Name() string         { return "trash" }
func (AddMoney) Name() string      { return "add-money" }
func (RemoveMoney) Name() string   { return "remove-money" }
func (MarkRead) Name() string      { return "mark-read" }
func (WithMessage) Name() string   { return "with-message" }
func (Schedule) Name() string      { return "schedule" }
func (Seq) Name() string           { return "seq" }
func (MenuNext) Name() string      { return "menu-next" }
func (MenuPrev) Name() string      { return "menu-prev" }
func (MenuSelect) Name() string    { return "menu-select" }
func (EditText) Name() string      { return "edit-text" }
func (EditFormField) Name() string { return "edit-form-field" }

func (None) isAction()          {}
func (Sleep) isAction()         {}
func (Collect) isAction()       {}
func (Recycle) isAction()       {}
func (Purchase) isAction()      {}
func (Exit) isAction()          {}
func (Back) isAction()          {}
func (MaybeBack) isAction()     {}
func (EnterMenu) isAction()     {}
func (EnterSkills) isAction()   {}
func (EnterDebug) isAction()    {}
func (DisplayDoc) isAction()    {}
func (NewLetter) isAction()     {}
func (EditLetter) isAction()    {}
func (SetLetterText) isAction() {}
func (EditForm) isAction()      {}
func (SaveForm) isAction()      {}
func (Send) isAction()          {}
func (AddItems) isAction()      {}
func (Grant) isAction()         {}
func (Pickup) isAction()        {}
func (Drop) isAction()          {}
func (PickupPart) isAction()    {}
func (Trash) isAction()         {}
func (AddMoney) isAction()      {}
func (RemoveMoney) isAction()   {}
func (MarkRead) isAction()      {}
func (WithMessage) isAction()   {}
func (Schedule) isAction()      {}
func (Seq) isAction()           {}
func (MenuNext) isAction()      {}
func (MenuPrev) isAction()      {}
func (MenuSelect) isAction()    {}
func (EditText) isAction()      {}
func (EditFormField) isAction() {}
