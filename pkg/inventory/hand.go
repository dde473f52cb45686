package inventory

import "fmt"

// Hand returns the item currently held, if any.
func (s *Store) Hand() (ItemID, bool) {
	return s.hand, s.hand != None
}

// Pickup moves the occupant of loc into the hand.
func (s *Store) Pickup(loc Location) (ItemID, error) {
	if s.hand != None {
		return None, fmt.Errorf("%w: holding %d", ErrHandOccupied, s.hand)
	}
	id, err := s.RemoveAt(loc)
	if err != nil {
		return None, err
	}
	s.hand = id
	return id, nil
}

// Hold puts a detached item into the empty hand.
func (s *Store) Hold(id ItemID) error {
	if s.hand != None {
		return fmt.Errorf("%w: holding %d", ErrHandOccupied, s.hand)
	}
	if !s.Exists(id) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if loc, ok := s.locs[id]; ok {
		return fmt.Errorf("%w: id %d at %s", ErrAlreadyLocated, id, loc)
	}
	s.hand = id
	return nil
}

// Drop moves the held item to loc. The hand keeps the item if the drop fails.
func (s *Store) Drop(loc Location) (ItemID, error) {
	id := s.hand
	if id == None {
		return None, ErrHandEmpty
	}
	s.hand = None
	if err := s.InsertAt(id, loc); err != nil {
		s.hand = id
		return None, err
	}
	return id, nil
}
