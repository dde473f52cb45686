package inventory

import "errors"

// Every error returned by this package signals a broken precondition: the
// caller asked for something the current state does not allow. None of them
// are expected during normal play.
var (
	ErrNotFound        = errors.New("item not found")
	ErrWrongVariant    = errors.New("item has a different variant")
	ErrVariantMismatch = errors.New("payload variant does not match stored item")
	ErrNotContainer    = errors.New("item is not a container of that kind")
	ErrSlotEmpty       = errors.New("slot is empty")
	ErrSlotOccupied    = errors.New("slot is occupied")
	ErrOutOfRange      = errors.New("position out of range")
	ErrAlreadyLocated  = errors.New("item is already in a container")
	ErrHandOccupied    = errors.New("hand is already holding an item")
	ErrHandEmpty       = errors.New("hand is empty")
	ErrContainerCycle  = errors.New("container would end up inside itself")
	ErrNotStack        = errors.New("item is not a stack")
	ErrInconsistent    = errors.New("location index is inconsistent")
)
