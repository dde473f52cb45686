package inventory

import (
	"fmt"
	"slices"
)

// Slots returns a copy of the contents of container c. Rigid containers
// report None for empty slots.
func (s *Store) Slots(c ItemID) ([]ItemID, error) {
	p, err := s.Get(c)
	if err != nil {
		return nil, err
	}
	if slots, ok := rigidSlots(p); ok {
		return append([]ItemID{}, slots...), nil
	}
	if f, ok := p.(*FlexContainer); ok {
		return append([]ItemID{}, f.Contents...), nil
	}
	return nil, fmt.Errorf("%w: id %d is %s", ErrNotContainer, c, p.Kind())
}

// ItemAt returns the occupant of loc.
func (s *Store) ItemAt(loc Location) (ItemID, Payload, error) {
	id, err := s.occupant(loc)
	if err != nil {
		return None, nil, err
	}
	p, err := s.Get(id)
	if err != nil {
		return None, nil, err
	}
	return id, p, nil
}

// RemoveAt detaches the occupant of loc and clears its index entry. Rigid
// slots become empty; later flex positions shift down by one and are
// re-indexed.
func (s *Store) RemoveAt(loc Location) (ItemID, error) {
	switch loc.Kind {
	case Rigid:
		slots, err := s.rigid(loc.Container)
		if err != nil {
			return None, err
		}
		if loc.Index < 0 || loc.Index >= len(slots) {
			return None, fmt.Errorf("%w: %s", ErrOutOfRange, loc)
		}
		id := slots[loc.Index]
		if id == None {
			return None, fmt.Errorf("%w: %s", ErrSlotEmpty, loc)
		}
		slots[loc.Index] = None
		delete(s.locs, id)
		return id, nil

	case Flex:
		f, err := s.Flex(loc.Container)
		if err != nil {
			return None, err
		}
		if loc.Index < 0 || loc.Index >= len(f.Contents) {
			return None, fmt.Errorf("%w: %s", ErrSlotEmpty, loc)
		}
		id := f.Contents[loc.Index]
		f.Contents = slices.Delete(f.Contents, loc.Index, loc.Index+1)
		delete(s.locs, id)
		s.reindexFlex(loc.Container, f, loc.Index)
		return id, nil
	}
	return None, fmt.Errorf("%w: %s", ErrOutOfRange, loc)
}

// InsertAt attaches id at loc and records the location. Rigid slots must be
// empty; flex insertion accepts positions 0 through len and shifts later
// positions up by one.
func (s *Store) InsertAt(id ItemID, loc Location) error {
	if !s.Exists(id) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if cur, ok := s.locs[id]; ok {
		return fmt.Errorf("%w: id %d at %s", ErrAlreadyLocated, id, cur)
	}
	if s.hand == id {
		return fmt.Errorf("%w: id %d is in hand", ErrAlreadyLocated, id)
	}
	if s.Contains(id, loc.Container) {
		return fmt.Errorf("%w: id %d into %d", ErrContainerCycle, id, loc.Container)
	}

	switch loc.Kind {
	case Rigid:
		slots, err := s.rigid(loc.Container)
		if err != nil {
			return err
		}
		if loc.Index < 0 || loc.Index >= len(slots) {
			return fmt.Errorf("%w: %s", ErrOutOfRange, loc)
		}
		if slots[loc.Index] != None {
			return fmt.Errorf("%w: %s", ErrSlotOccupied, loc)
		}
		slots[loc.Index] = id
		s.locs[id] = loc
		return nil

	case Flex:
		f, err := s.Flex(loc.Container)
		if err != nil {
			return err
		}
		if loc.Index < 0 || loc.Index > len(f.Contents) {
			return fmt.Errorf("%w: %s", ErrOutOfRange, loc)
		}
		f.Contents = slices.Insert(f.Contents, loc.Index, id)
		s.reindexFlex(loc.Container, f, loc.Index)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrOutOfRange, loc)
}

// Append inserts id at the end of flex container c.
func (s *Store) Append(c ItemID, id ItemID) (Location, error) {
	f, err := s.Flex(c)
	if err != nil {
		return Location{}, err
	}
	loc := FlexAt(c, len(f.Contents))
	if err := s.InsertAt(id, loc); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// DeleteAt detaches and destroys the occupant of loc. Anything held inside
// the occupant is destroyed with it.
func (s *Store) DeleteAt(loc Location) error {
	id, err := s.RemoveAt(loc)
	if err != nil {
		return err
	}
	return s.Destroy(id)
}

// Destroy removes a detached item and everything inside it.
func (s *Store) Destroy(id ItemID) error {
	if loc, ok := s.locs[id]; ok {
		return fmt.Errorf("%w: id %d is still at %s", ErrAlreadyLocated, id, loc)
	}
	return s.destroy(id)
}

func (s *Store) destroy(id ItemID) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if IsContainer(p) {
		children, err := s.Slots(id)
		if err != nil {
			return err
		}
		for _, child := range children {
			if child == None {
				continue
			}
			delete(s.locs, child)
			if err := s.destroy(child); err != nil {
				return err
			}
		}
	}
	return s.Remove(id)
}

// Contains reports whether id is ancestor itself or sits somewhere inside it.
func (s *Store) Contains(ancestor, id ItemID) bool {
	cur := id
	for {
		if cur == ancestor {
			return true
		}
		loc, ok := s.locs[cur]
		if !ok {
			return false
		}
		cur = loc.Container
	}
}

// ContainerLen returns the slot count of a rigid container or the length of a
// flex one.
func (s *Store) ContainerLen(c ItemID) (int, error) {
	slots, err := s.Slots(c)
	if err != nil {
		return 0, err
	}
	return len(slots), nil
}

// Children returns the non-empty occupants of container c in order.
func (s *Store) Children(c ItemID) ([]ItemID, error) {
	slots, err := s.Slots(c)
	if err != nil {
		return nil, err
	}
	out := make([]ItemID, 0, len(slots))
	for _, id := range slots {
		if id != None {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *Store) occupant(loc Location) (ItemID, error) {
	switch loc.Kind {
	case Rigid:
		slots, err := s.rigid(loc.Container)
		if err != nil {
			return None, err
		}
		if loc.Index < 0 || loc.Index >= len(slots) {
			return None, fmt.Errorf("%w: %s", ErrOutOfRange, loc)
		}
		if slots[loc.Index] == None {
			return None, fmt.Errorf("%w: %s", ErrSlotEmpty, loc)
		}
		return slots[loc.Index], nil
	case Flex:
		f, err := s.Flex(loc.Container)
		if err != nil {
			return None, err
		}
		if loc.Index < 0 || loc.Index >= len(f.Contents) {
			return None, fmt.Errorf("%w: %s", ErrSlotEmpty, loc)
		}
		return f.Contents[loc.Index], nil
	}
	return None, fmt.Errorf("%w: %s", ErrOutOfRange, loc)
}

func (s *Store) rigid(c ItemID) ([]ItemID, error) {
	p, err := s.Get(c)
	if err != nil {
		return nil, err
	}
	slots, ok := rigidSlots(p)
	if !ok {
		return nil, fmt.Errorf("%w: id %d is %s, want rigid", ErrNotContainer, c, p.Kind())
	}
	return slots, nil
}

// reindexFlex rewrites the index entry of every item at position from or
// later. Positions before from are untouched by insertion or removal there.
func (s *Store) reindexFlex(c ItemID, f *FlexContainer, from int) {
	for ix := from; ix < len(f.Contents); ix++ {
		s.locs[f.Contents[ix]] = FlexAt(c, ix)
	}
}

// Check verifies that container contents and the location index agree in
// both directions and that the hand holds a detached, live item.
func (s *Store) Check() error {
	seen := make(map[ItemID]Location)
	for c, p := range s.items {
		var contents []ItemID
		var kind LocationKind
		if slots, ok := rigidSlots(p); ok {
			contents, kind = slots, Rigid
		} else if f, ok := p.(*FlexContainer); ok {
			contents, kind = f.Contents, Flex
		} else {
			continue
		}
		for ix, id := range contents {
			if id == None {
				continue
			}
			here := Location{Kind: kind, Container: c, Index: ix}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: id %d in both %s and %s", ErrInconsistent, id, prev, here)
			}
			seen[id] = here
			if !s.Exists(id) {
				return fmt.Errorf("%w: %s holds missing id %d", ErrInconsistent, here, id)
			}
			if got, ok := s.locs[id]; !ok || got != here {
				return fmt.Errorf("%w: id %d at %s but indexed as %v", ErrInconsistent, id, here, got)
			}
		}
	}
	for id, loc := range s.locs {
		if seen[id] != loc {
			return fmt.Errorf("%w: index says id %d at %s, container disagrees", ErrInconsistent, id, loc)
		}
	}
	if s.hand != None {
		if !s.Exists(s.hand) {
			return fmt.Errorf("%w: hand holds missing id %d", ErrInconsistent, s.hand)
		}
		if loc, ok := s.locs[s.hand]; ok {
			return fmt.Errorf("%w: hand item %d also at %s", ErrInconsistent, s.hand, loc)
		}
	}
	return nil
}
