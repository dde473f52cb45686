package game

import (
	"errors"
	"fmt"
)

// Hard-failure causes raised by the reducer itself. Inventory failures
// (inventory.ErrSlotEmpty and friends) are passed through unchanged inside
// an InvariantError.
var (
	ErrRootFrame       = errors.New("cannot pop the root frame")
	ErrWrongFrame      = errors.New("active frame does not accept this action")
	ErrNotLocated      = errors.New("item has no location")
	ErrCannotHoldMoney = errors.New("item cannot hold money")
	ErrNoTarget        = errors.New("no target item")
	ErrInsufficient    = errors.New("not enough resources")
	ErrUnknownAction   = errors.New("unknown action")
	ErrNotOffered      = errors.New("action not available")
)

// InvariantError reports a hard failure: the action could only have been
// produced by a menu that should not have offered it. The state may be
// partially mutated and must not be used further.
type InvariantError struct {
	Action string
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %v", e.Action, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// IsInvariantViolation reports whether err is, or wraps, an InvariantError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
