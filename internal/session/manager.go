// Package session keeps running games in memory, serializes the actions sent
// to each one and reports what happened to an optional event publisher.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jcreedcmu/paperwork-game/internal/logger"
	"github.com/jcreedcmu/paperwork-game/pkg/game"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionPoisoned = errors.New("session stopped after an invariant violation")
)

// Publisher receives a notification for every game event worth observing
// outside the process. *events.Broadcaster implements it.
type Publisher interface {
	PublishGameCreated(ctx context.Context, gameID uuid.UUID) error
	PublishAction(ctx context.Context, gameID uuid.UUID, tick int, action string, steps int) error
	PublishLog(ctx context.Context, gameID uuid.UUID, tick int, msg string) error
	PublishFailed(ctx context.Context, gameID uuid.UUID, tick int, action string, errorMsg string) error
	PublishGameClosed(ctx context.Context, gameID uuid.UUID, tick int) error
}

type nopPublisher struct{}

func (nopPublisher) PublishGameCreated(context.Context, uuid.UUID) error { return nil }
func (nopPublisher) PublishAction(context.Context, uuid.UUID, int, string, int) error { return nil }
func (nopPublisher) PublishLog(context.Context, uuid.UUID, int, string) error { return nil }
func (nopPublisher) PublishFailed(context.Context, uuid.UUID, int, string, string) error { return nil }
func (nopPublisher) PublishGameClosed(context.Context, uuid.UUID, int) error { return nil }

type session struct {
	mu       sync.Mutex
	state    *game.State
	poisoned error
}

// Manager owns a set of game sessions keyed by uuid.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*session
	content   *game.Content
	stateOpts []game.Option
	publisher Publisher
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithPublisher reports session events to p.
func WithPublisher(p Publisher) Option {
	return func(m *Manager) {
		if p != nil {
			m.publisher = p
		}
	}
}

// WithStateOptions passes opts to every new game.
func WithStateOptions(opts ...game.Option) Option {
	return func(m *Manager) { m.stateOpts = append(m.stateOpts, opts...) }
}

func NewManager(content *game.Content, log *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions:  make(map[uuid.UUID]*session),
		content:   content,
		publisher: nopPublisher{},
		logger:    log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new game and returns its id.
func (m *Manager) Create(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	gameLog := logger.WithGameID(m.logger, id.String())

	opts := append(append([]game.Option(nil), m.stateOpts...), game.WithLogger(gameLog))
	st, err := game.NewState(m.content, opts...)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create game: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = &session{state: st}
	m.mu.Unlock()

	gameLog.Info("Game session created")
	if err := m.publisher.PublishGameCreated(ctx, id); err != nil {
		logger.WithError(gameLog, err).Warn("Failed to publish game created event")
	}
	return id, nil
}

func (m *Manager) get(id uuid.UUID) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Dispatch runs a against the game. Once a dispatch fails with an invariant
// violation the session refuses further actions.
func (m *Manager) Dispatch(ctx context.Context, id uuid.UUID, a game.Action) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned != nil {
		return fmt.Errorf("%w: %v", ErrSessionPoisoned, s.poisoned)
	}

	gameLog := logger.WithGameID(m.logger, id.String())
	before := s.state.LogLen()

	if err := s.state.Dispatch(a); err != nil {
		s.poisoned = err
		logger.WithError(gameLog, err).Error("Game session stopped", "action", a.Name(), "tick", s.state.Time())
		if perr := m.publisher.PublishFailed(ctx, id, s.state.Time(), a.Name(), err.Error()); perr != nil {
			logger.WithError(gameLog, perr).Warn("Failed to publish failure event")
		}
		return err
	}

	if n := s.state.LogLen() - before; n > 0 {
		for _, line := range s.state.Log(n) {
			if err := m.publisher.PublishLog(ctx, id, line.Time, line.Msg); err != nil {
				logger.WithError(gameLog, err).Warn("Failed to publish log event")
			}
		}
	}
	if err := m.publisher.PublishAction(ctx, id, s.state.Time(), a.Name(), len(s.state.Trace())); err != nil {
		logger.WithError(gameLog, err).Warn("Failed to publish action event")
	}

	if s.state.Won() {
		gameLog.Info("Player purchased their freedom", "tick", s.state.Time())
	}
	return nil
}

// View calls fn with the game state while holding the session lock. fn must
// not keep the state after it returns.
func (m *Manager) View(id uuid.UUID, fn func(*game.State) error) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Close forgets the session.
func (m *Manager) Close(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.mu.Lock()
	tick := s.state.Time()
	s.mu.Unlock()

	gameLog := logger.WithGameID(m.logger, id.String())
	gameLog.Info("Game session closed", "tick", tick)
	if err := m.publisher.PublishGameClosed(ctx, id, tick); err != nil {
		logger.WithError(gameLog, err).Warn("Failed to publish game closed event")
	}
	return nil
}

// Len reports how many sessions are open.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
