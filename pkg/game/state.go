// Package game is the simulation engine: the action reducer, the navigation
// stack, the scheduler of deferred actions and the periodic outbox job. All
// mutation goes through State.Dispatch.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

// DefaultOutboxPeriod is how many ticks pass between outbox collections.
const DefaultOutboxPeriod = 10

// LogLine is one message in the game log.
type LogLine struct {
	Time int    `json:"time"`
	Msg  string `json:"msg"`
}

// State is one game session. It is not safe for concurrent use; callers
// serialize Dispatch and every read.
type State struct {
	time   int
	ledger *resource.Ledger
	store  *inventory.Store
	root   inventory.ItemID
	inbox  inventory.ItemID
	outbox inventory.ItemID
	unread map[inventory.ItemID]bool
	frames []Frame

	futures []Future
	period  int

	log    []LogLine
	skills *Skills

	content *Content
	rng     *rand.Rand
	logger  *slog.Logger
	trace   []string

	won    bool
	exited bool
}

// Option configures a new State.
type Option func(*State)

// WithSeed seeds the random source used by collect.
func WithSeed(seed uint64) Option {
	return func(s *State) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithOutboxPeriod overrides DefaultOutboxPeriod.
func WithOutboxPeriod(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.period = n
		}
	}
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a game at tick 0 with an empty inbox and outbox inside
// the root container and the main menu as the only frame.
func NewState(content *Content, opts ...Option) (*State, error) {
	if content == nil {
		return nil, fmt.Errorf("content cannot be nil")
	}
	skills, err := NewSkills()
	if err != nil {
		return nil, err
	}

	s := &State{
		ledger:  resource.NewLedger(),
		store:   inventory.NewStore(),
		unread:  make(map[inventory.ItemID]bool),
		frames:  []Frame{&MenuFrame{Menu: MainMenu}},
		period:  DefaultOutboxPeriod,
		skills:  skills,
		content: content,
		logger:  slog.New(slog.DiscardHandler),
	}
	WithSeed(0)(s)
	for _, opt := range opts {
		opt(s)
	}

	s.root = s.store.Create(&inventory.FlexContainer{})
	s.inbox = s.store.Create(&inventory.FlexContainer{})
	s.outbox = s.store.Create(&inventory.FlexContainer{})
	if _, err := s.store.Append(s.root, s.inbox); err != nil {
		return nil, err
	}
	if _, err := s.store.Append(s.root, s.outbox); err != nil {
		return nil, err
	}
	return s, nil
}

// Time returns the current tick.
func (s *State) Time() int { return s.time }

// Resource returns the ledger count of k.
func (s *State) Resource(k resource.Kind) int { return s.ledger.Get(k) }

// Resources returns a copy of the ledger.
func (s *State) Resources() map[resource.Kind]int { return s.ledger.Snapshot() }

// Root returns the id of the root container.
func (s *State) Root() inventory.ItemID { return s.root }

// Inbox returns the id of the inbox container.
func (s *State) Inbox() inventory.ItemID { return s.inbox }

// Outbox returns the id of the outbox container.
func (s *State) Outbox() inventory.ItemID { return s.outbox }

// Item returns the payload of id. Callers must treat it as read-only.
func (s *State) Item(id inventory.ItemID) (inventory.Payload, error) {
	return s.store.Get(id)
}

// LocationOf returns where id currently sits.
func (s *State) LocationOf(id inventory.ItemID) (inventory.Location, bool) {
	return s.store.LocationOf(id)
}

// Contents returns the slots of container c.
func (s *State) Contents(c inventory.ItemID) ([]inventory.ItemID, error) {
	return s.store.Slots(c)
}

// Hand returns the held item, if any.
func (s *State) Hand() (inventory.ItemID, bool) { return s.store.Hand() }

// IsUnread reports whether id carries the unread flag.
func (s *State) IsUnread(id inventory.ItemID) bool { return s.unread[id] }

// UnreadCount returns the number of unread items directly inside c.
func (s *State) UnreadCount(c inventory.ItemID) int {
	ids, err := s.store.Children(c)
	if err != nil {
		return 0
	}
	n := 0
	for _, id := range ids {
		if s.unread[id] {
			n++
		}
	}
	return n
}

// Frames returns the navigation stack, root first.
func (s *State) Frames() []Frame { return slices.Clone(s.frames) }

// Top returns the active frame.
func (s *State) Top() Frame { return s.frames[len(s.frames)-1] }

// Log returns the most recent n log lines, newest last.
func (s *State) Log(n int) []LogLine {
	if n <= 0 || n > len(s.log) {
		n = len(s.log)
	}
	return slices.Clone(s.log[len(s.log)-n:])
}

// LogLen returns the total number of log lines written.
func (s *State) LogLen() int { return len(s.log) }

// Skills returns the skills sheet.
func (s *State) Skills() *Skills { return s.skills }

// Content returns the resolution tables in use.
func (s *State) Content() *Content { return s.content }

// Won reports whether freedom has been purchased.
func (s *State) Won() bool { return s.won }

// Exited reports whether the player asked to leave.
func (s *State) Exited() bool { return s.exited }

// Done reports whether the read loop should stop.
func (s *State) Done() bool { return s.won || s.exited }

// Trace returns the names of the actions evaluated by the last Dispatch, in
// evaluation order.
func (s *State) Trace() []string { return slices.Clone(s.trace) }

// Stats are the counters shown by the debug frame.
type Stats struct {
	Time     int
	Items    int
	NextID   inventory.ItemID
	Futures  int
	Frames   int
	LogLines int
	Unread   int
}

// Stats returns engine counters.
func (s *State) Stats() Stats {
	return Stats{
		Time:     s.time,
		Items:    s.store.Len(),
		NextID:   s.store.NextID(),
		Futures:  len(s.futures),
		Frames:   len(s.frames),
		LogLines: len(s.log),
		Unread:   len(s.unread),
	}
}

// Check verifies the inventory's location index.
func (s *State) Check() error { return s.store.Check() }

func (s *State) message(msg string) {
	s.log = append(s.log, LogLine{Time: s.time, Msg: msg})
}
