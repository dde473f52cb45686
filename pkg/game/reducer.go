package game

import (
	"errors"
	"fmt"

	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

// Dispatch performs a and everything it leads to: inner actions of
// composites, follow-ups from frame editors and futures that fall due. Work
// is kept on an explicit stack and evaluated depth-first, so an action's
// follow-ups finish before the next queued action starts.
//
// A non-nil error is always an *InvariantError.
func (s *State) Dispatch(a Action) error {
	s.trace = s.trace[:0]
	work := []Action{a}
	for len(work) > 0 {
		next := work[len(work)-1]
		work = work[:len(work)-1]

		s.trace = append(s.trace, next.Name())
		follow, err := s.step(next)
		if err != nil {
			s.logger.Error("hard failure", "action", next.Name(), "time", s.time, "error", err)
			return &InvariantError{Action: next.Name(), Err: err}
		}
		for i := len(follow) - 1; i >= 0; i-- {
			work = append(work, follow[i])
		}
	}
	s.logger.Debug("dispatched", "action", a.Name(), "time", s.time, "steps", len(s.trace))
	return nil
}

// step applies one action and returns the actions to run next, in order.
func (s *State) step(a Action) ([]Action, error) {
	switch a := a.(type) {
	case None:
		return nil, nil

	case Sleep:
		return s.advance()

	case Collect:
		k := resource.Collectable[s.rng.IntN(len(resource.Collectable))]
		if err := s.ledger.Adjust(k, 1); err != nil {
			return nil, err
		}
		return s.advance()

	case Recycle:
		bottles := s.ledger.Get(resource.Bottle)
		if err := s.ledger.Adjust(resource.Cash, bottles); err != nil {
			return nil, err
		}
		if err := s.ledger.Set(resource.Bottle, 0); err != nil {
			return nil, err
		}
		return s.advance()

	case Purchase:
		price := s.content.FreedomPrice
		if !s.ledger.Has(resource.Cash, price) {
			return nil, fmt.Errorf("%w: freedom costs $%d", ErrInsufficient, price)
		}
		if err := s.ledger.Adjust(resource.Cash, -price); err != nil {
			return nil, err
		}
		s.won = true
		s.message("You purchased your freedom!")
		return nil, nil

	case Exit:
		s.exited = true
		return nil, nil

	case Back:
		if len(s.frames) <= 1 {
			return nil, ErrRootFrame
		}
		s.frames = s.frames[:len(s.frames)-1]
		return nil, nil

	case MaybeBack:
		if len(s.frames) > 1 {
			s.frames = s.frames[:len(s.frames)-1]
		}
		return nil, nil

	case EnterMenu:
		if err := s.checkMenu(a.Menu); err != nil {
			return nil, err
		}
		s.push(&MenuFrame{Menu: a.Menu})
		return nil, nil

	case EnterSkills:
		s.push(&SkillsFrame{})
		return nil, nil

	case EnterDebug:
		s.push(&DebugFrame{})
		return nil, nil

	case DisplayDoc:
		if _, err := s.store.Document(a.ID); err != nil {
			return nil, err
		}
		s.push(&DisplayFrame{Doc: a.ID})
		return nil, nil

	case NewLetter:
		if !s.canWriteLetter() {
			return nil, fmt.Errorf("%w: need paper and pencil", ErrInsufficient)
		}
		s.push(&TextEditFrame{Target: inventory.None})
		return nil, nil

	case EditLetter:
		l, err := s.store.Letter(a.ID)
		if err != nil {
			return nil, err
		}
		s.push(&TextEditFrame{Target: a.ID, Text: l.Body, Cursor: runeLen(l.Body)})
		return nil, nil

	case SetLetterText:
		return nil, s.setLetterText(a)

	case EditForm:
		return nil, s.editForm(a)

	case SaveForm:
		return nil, s.saveForm(a)

	case Send:
		loc, ok := s.store.LocationOf(a.ID)
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrNotLocated, a.ID)
		}
		if _, err := s.store.RemoveAt(loc); err != nil {
			return nil, err
		}
		if _, err := s.store.Append(s.outbox, a.ID); err != nil {
			return nil, err
		}
		return nil, nil

	case AddItems:
		for _, p := range a.Items {
			id := s.store.Create(p)
			if _, err := s.store.Append(s.inbox, id); err != nil {
				return nil, err
			}
			s.logger.Debug("item delivered", "id", id, "item", inventory.String(p), "time", s.time)
			if a.Unread {
				s.unread[id] = true
			}
		}
		return nil, nil

	case Grant:
		return nil, s.ledger.Adjust(a.Resource, a.Quantity)

	case Pickup:
		_, err := s.store.Pickup(a.Loc)
		return nil, err

	case Drop:
		_, err := s.store.Drop(a.Loc)
		return nil, err

	case PickupPart:
		_, ok, err := s.store.Divide(a.Loc, a.Amount)
		if a.SoftFail && errors.Is(err, inventory.ErrHandOccupied) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !ok && !a.SoftFail {
			return nil, fmt.Errorf("%w: no single-unit form at %s", ErrNotOffered, a.Loc)
		}
		return nil, nil

	case Trash:
		if err := s.store.DeleteAt(a.Loc); err != nil {
			return nil, err
		}
		s.pruneUnread()
		return nil, nil

	case AddMoney:
		money, err := s.moneyField(a.ID)
		if err != nil {
			return nil, err
		}
		if s.ledger.Get(resource.Cash) == 0 {
			return nil, nil
		}
		if err := s.ledger.Adjust(resource.Cash, -1); err != nil {
			return nil, err
		}
		*money++
		return nil, nil

	case RemoveMoney:
		money, err := s.moneyField(a.ID)
		if err != nil {
			return nil, err
		}
		if *money == 0 {
			return nil, nil
		}
		*money--
		return nil, s.ledger.Adjust(resource.Cash, 1)

	case MarkRead:
		delete(s.unread, a.ID)
		return []Action{a.Then}, nil

	case WithMessage:
		s.message(a.Msg)
		return []Action{a.Then}, nil

	case Schedule:
		if a.Delay < 0 {
			return nil, fmt.Errorf("negative delay %d", a.Delay)
		}
		s.ScheduleFuture(a.Delay, a.Then)
		return nil, nil

	case Seq:
		return a.Actions, nil

	case MenuNext:
		return nil, s.moveSelection(1)

	case MenuPrev:
		return nil, s.moveSelection(-1)

	case MenuSelect:
		return s.menuSelect()

	case EditText:
		return s.editText(a)

	case EditFormField:
		return s.editFormField(a)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownAction, a)
}

func (s *State) push(f Frame) {
	s.frames = append(s.frames, f)
}

func (s *State) canWriteLetter() bool {
	return s.ledger.Has(resource.Paper, 1) && s.ledger.Has(resource.Pencil, 1)
}

func (s *State) checkMenu(m Menu) error {
	switch m.Kind {
	case MenuMain:
		return nil
	case MenuFlex:
		_, err := s.store.Flex(m.Container)
		return err
	case MenuRigid:
		p, err := s.store.Get(m.Container)
		if err != nil {
			return err
		}
		if p.Kind() != inventory.KindEnvelope && p.Kind() != inventory.KindRigidContainer {
			return fmt.Errorf("%w: id %d is %s", inventory.ErrNotContainer, m.Container, p.Kind())
		}
		return nil
	}
	return fmt.Errorf("unknown menu %q", m.Kind)
}

func (s *State) setLetterText(a SetLetterText) error {
	if a.ID != inventory.None {
		l, err := s.store.Letter(a.ID)
		if err != nil {
			return err
		}
		l.Body = a.Text
		return nil
	}
	if err := s.ledger.Adjust(resource.Paper, -1); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficient, err)
	}
	id := s.store.Create(&inventory.Letter{Body: a.Text})
	_, err := s.store.Append(s.inbox, id)
	return err
}

func (s *State) editForm(a EditForm) error {
	switch a.Save {
	case SaveRegularForm:
		f, err := s.store.Form(a.ID)
		if err != nil {
			return err
		}
		layout := FormLayout(f.Form)
		fields := make([]string, len(layout))
		copy(fields, f.Fields)
		s.push(&FormEditFrame{Target: a.ID, Form: f.Form, Layout: layout, Fields: fields, Save: a.Save})
		return nil
	case SaveEnvelopeAddress:
		e, err := s.store.Envelope(a.ID)
		if err != nil {
			return err
		}
		s.push(&FormEditFrame{
			Target: a.ID,
			Form:   inventory.FormEnvelopeAddress,
			Layout: FormLayout(inventory.FormEnvelopeAddress),
			Fields: []string{e.Address},
			Save:   a.Save,
		})
		return nil
	}
	return fmt.Errorf("unknown save continuation %q", a.Save)
}

func (s *State) saveForm(a SaveForm) error {
	if a.ID == inventory.None {
		return fmt.Errorf("%w: form submission", ErrNoTarget)
	}
	switch a.Save {
	case SaveRegularForm:
		f, err := s.store.Form(a.ID)
		if err != nil {
			return err
		}
		f.Fields = append([]string(nil), a.Fields...)
		return nil
	case SaveEnvelopeAddress:
		e, err := s.store.Envelope(a.ID)
		if err != nil {
			return err
		}
		e.Address = field(a.Fields, 0)
		return nil
	}
	return fmt.Errorf("unknown save continuation %q", a.Save)
}

func (s *State) moneyField(id inventory.ItemID) (*int, error) {
	p, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	money, ok := inventory.MoneyField(p)
	if !ok {
		return nil, fmt.Errorf("%w: id %d is %s", ErrCannotHoldMoney, id, p.Kind())
	}
	return money, nil
}

func (s *State) pruneUnread() {
	for id := range s.unread {
		if !s.store.Exists(id) {
			delete(s.unread, id)
		}
	}
}
