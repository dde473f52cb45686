package inventory

import "fmt"

// Store owns every item. Container payloads hold the forward references
// (slots and contents); the store keeps the backward references in a
// location index and updates both sides together on every structural change.
//
// A Store is not safe for concurrent use.
type Store struct {
	nextID ItemID
	items  map[ItemID]Payload
	locs   map[ItemID]Location
	hand   ItemID
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		items: make(map[ItemID]Payload),
		locs:  make(map[ItemID]Location),
		hand:  None,
	}
}

// Create stores p under a fresh id. The new item has no location.
func (s *Store) Create(p Payload) ItemID {
	id := s.nextID
	s.nextID++
	s.items[id] = p
	return id
}

// Get returns the payload of id.
func (s *Store) Get(id ItemID) (Payload, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return p, nil
}

// Exists reports whether id is in the store.
func (s *Store) Exists(id ItemID) bool {
	_, ok := s.items[id]
	return ok
}

// Set replaces the payload of id. The replacement must be the same variant.
func (s *Store) Set(id ItemID, p Payload) error {
	old, err := s.Get(id)
	if err != nil {
		return err
	}
	if old.Kind() != p.Kind() {
		return fmt.Errorf("%w: id %d is %s, got %s", ErrVariantMismatch, id, old.Kind(), p.Kind())
	}
	s.items[id] = p
	return nil
}

// Remove erases the payload and location entry of id. The caller must have
// detached the item from its container first; DeleteAt does both.
func (s *Store) Remove(id ItemID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	delete(s.items, id)
	delete(s.locs, id)
	if s.hand == id {
		s.hand = None
	}
	return nil
}

// Len returns the number of live items.
func (s *Store) Len() int {
	return len(s.items)
}

// NextID returns the id the next Create will allocate.
func (s *Store) NextID() ItemID {
	return s.nextID
}

// LocationOf returns the current location of id, if it has one.
func (s *Store) LocationOf(id ItemID) (Location, bool) {
	loc, ok := s.locs[id]
	return loc, ok
}

// Letter returns the letter stored under id.
func (s *Store) Letter(id ItemID) (*Letter, error) {
	return typed[*Letter](s, id, KindLetter)
}

// Document returns the document stored under id.
func (s *Store) Document(id ItemID) (*Document, error) {
	return typed[*Document](s, id, KindDocument)
}

// Form returns the form stored under id.
func (s *Store) Form(id ItemID) (*Form, error) {
	return typed[*Form](s, id, KindForm)
}

// Envelope returns the envelope stored under id.
func (s *Store) Envelope(id ItemID) (*Envelope, error) {
	return typed[*Envelope](s, id, KindEnvelope)
}

// Stack returns the stack stored under id.
func (s *Store) Stack(id ItemID) (*Stack, error) {
	return typed[*Stack](s, id, KindStack)
}

// Flex returns the flex container stored under id.
func (s *Store) Flex(id ItemID) (*FlexContainer, error) {
	return typed[*FlexContainer](s, id, KindFlexContainer)
}

func typed[T Payload](s *Store, id ItemID, want Kind) (T, error) {
	var zero T
	p, err := s.Get(id)
	if err != nil {
		return zero, err
	}
	v, ok := p.(T)
	if !ok {
		return zero, fmt.Errorf("%w: id %d is %s, want %s", ErrWrongVariant, id, p.Kind(), want)
	}
	return v, nil
}
