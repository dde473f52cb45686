package inventory

import (
	"fmt"

	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

// Division says how much of a stack to take.
type Division string

const (
	// Half takes ceil(q/2). Rounding up is deliberate: an odd stack's larger
	// half goes to the hand and the smaller half stays behind.
	Half Division = "half"

	// One takes a single unit in its discrete form.
	One Division = "one"
)

// EnvelopeSize is the slot count of an envelope peeled off a stack.
const EnvelopeSize = 3

// DiscreteForm returns the standalone item one unit of res becomes, if the
// resource has one.
func DiscreteForm(res resource.Kind) (Payload, bool) {
	switch res {
	case resource.Envelope:
		return NewEnvelope(EnvelopeSize), true
	default:
		return nil, false
	}
}

// Divide splits the stack at loc and puts the taken part in the hand. It
// returns the id of the new item. ok is false when Division One is asked of
// a resource with no discrete form; nothing changes in that case.
//
// The source stack is deleted instead of being left at quantity zero.
func (s *Store) Divide(loc Location, d Division) (id ItemID, ok bool, err error) {
	srcID, p, err := s.ItemAt(loc)
	if err != nil {
		return None, false, err
	}
	st, isStack := p.(*Stack)
	if !isStack {
		return None, false, fmt.Errorf("%w: %s holds %s", ErrNotStack, loc, p.Kind())
	}
	if s.hand != None {
		return None, false, fmt.Errorf("%w: holding %d", ErrHandOccupied, s.hand)
	}

	var taken Payload
	var grab int
	switch d {
	case Half:
		grab = (st.Quantity + 1) / 2
		taken = &Stack{Resource: st.Resource, Quantity: grab}
	case One:
		single, has := DiscreteForm(st.Resource)
		if !has {
			return None, false, nil
		}
		grab = 1
		taken = single
	default:
		return None, false, fmt.Errorf("unknown division %q", d)
	}

	if st.Quantity <= grab {
		if _, err := s.RemoveAt(loc); err != nil {
			return None, false, err
		}
		if err := s.Destroy(srcID); err != nil {
			return None, false, err
		}
	} else {
		st.Quantity -= grab
	}

	id = s.Create(taken)
	if err := s.Hold(id); err != nil {
		return None, false, err
	}
	return id, true, nil
}
