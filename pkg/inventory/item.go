// Package inventory is the item arena of the game: uniquely identified,
// variant-typed items, the containers that hold them, and the location index
// that answers "where is item X" and "what is in slot Y" without scanning.
package inventory

import (
	"fmt"

	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

// ItemID is the arena key of an item. It is never stored inside a payload.
type ItemID int

// None marks an empty rigid slot and an empty hand.
const None ItemID = -1

// Kind is the discriminator of a payload variant.
type Kind string

const (
	KindLetter         Kind = "letter"
	KindDocument       Kind = "document"
	KindForm           Kind = "form"
	KindEnvelope       Kind = "envelope"
	KindRigidContainer Kind = "rigid-container"
	KindFlexContainer  Kind = "flex-container"
	KindStack          Kind = "stack"
)

// Payload is the closed set of item variants. Only the pointer types in this
// file implement it.
type Payload interface {
	Kind() Kind
	payload()
}

// Letter is a hand-written letter, optionally with cash tucked inside.
type Letter struct {
	Body  string
	Money int
}

// Document is a read-only piece of mail.
type Document struct {
	Doc DocumentContent
}

// Form is a fillable form. Fields line up with the form's layout.
type Form struct {
	Form   FormKind
	Fields []string
	Money  int
}

// Envelope is an addressed rigid container.
type Envelope struct {
	Address string
	Slots   []ItemID
}

// RigidContainer is a fixed-size container without an address.
type RigidContainer struct {
	Slots []ItemID
}

// FlexContainer is an ordered, growable container such as the inbox.
type FlexContainer struct {
	Contents []ItemID
}

// Stack is a collapsible quantity of a single resource.
type Stack struct {
	Resource resource.Kind
	Quantity int
}

func (*Letter) Kind() Kind         { return KindLetter }
func (*Document) Kind() Kind       { return KindDocument }
func (*Form) Kind() Kind           { return KindForm }
func (*Envelope) Kind() Kind       { return KindEnvelope }
func (*RigidContainer) Kind() Kind { return KindRigidContainer }
func (*FlexContainer) Kind() Kind  { return KindFlexContainer }
func (*Stack) Kind() Kind          { return KindStack }

func (*Letter) payload()         {}
func (*Document) payload()       {}
func (*Form) payload()           {}
func (*Envelope) payload()       {}
func (*RigidContainer) payload() {}
func (*FlexContainer) payload()  {}
func (*Stack) payload()          {}

// NewEnvelope returns an unaddressed envelope with size empty slots.
func NewEnvelope(size int) *Envelope {
	return &Envelope{Slots: emptySlots(size)}
}

// NewRigidContainer returns a rigid container with size empty slots.
func NewRigidContainer(size int) *RigidContainer {
	return &RigidContainer{Slots: emptySlots(size)}
}

func emptySlots(size int) []ItemID {
	slots := make([]ItemID, size)
	for i := range slots {
		slots[i] = None
	}
	return slots
}

// MoneyField returns a pointer to the money held by p, if p can hold money.
func MoneyField(p Payload) (*int, bool) {
	switch v := p.(type) {
	case *Letter:
		return &v.Money, true
	case *Form:
		return &v.Money, true
	default:
		return nil, false
	}
}

// CanHoldMoney reports whether cash can be attached to p.
func CanHoldMoney(p Payload) bool {
	_, ok := MoneyField(p)
	return ok
}

// IsContainer reports whether p holds other items.
func IsContainer(p Payload) bool {
	switch p.(type) {
	case *Envelope, *RigidContainer, *FlexContainer:
		return true
	default:
		return false
	}
}

// rigidSlots returns the slot array of a rigid container. The returned slice
// shares storage with the payload.
func rigidSlots(p Payload) ([]ItemID, bool) {
	switch v := p.(type) {
	case *Envelope:
		return v.Slots, true
	case *RigidContainer:
		return v.Slots, true
	default:
		return nil, false
	}
}

// String renders a short debugging description of a payload.
func String(p Payload) string {
	switch v := p.(type) {
	case *Letter:
		return fmt.Sprintf("letter(%q, $%d)", v.Body, v.Money)
	case *Document:
		return fmt.Sprintf("document(%s)", v.Doc.Kind)
	case *Form:
		return fmt.Sprintf("form(%s, $%d)", v.Form, v.Money)
	case *Envelope:
		return fmt.Sprintf("envelope(%q, %d slots)", v.Address, len(v.Slots))
	case *RigidContainer:
		return fmt.Sprintf("container(%d slots)", len(v.Slots))
	case *FlexContainer:
		return fmt.Sprintf("flex(%d items)", len(v.Contents))
	case *Stack:
		return fmt.Sprintf("stack(%s x%d)", v.Resource, v.Quantity)
	default:
		return "unknown"
	}
}
