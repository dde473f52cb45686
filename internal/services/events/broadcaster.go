package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeGameCreated EventType = "game.created"
	EventTypeGameAction  EventType = "game.action"
	EventTypeGameLog     EventType = "game.log"
	EventTypeGameFailed  EventType = "game.failed"
	EventTypeGameClosed  EventType = "game.closed"
)

const (
	// JournalLimit is how many events each game journal keeps.
	JournalLimit = 200
	// JournalTTL is how long a journal survives without new events.
	JournalTTL = 24 * time.Hour
)

// Event represents a generic event structure
type Event struct {
	Type   EventType      `json:"type"`
	GameID string         `json:"game_id"`
	Tick   int            `json:"tick"`
	Data   map[string]any `json:"data,omitempty"`
}

// Broadcaster publishes game events to Redis Pub/Sub and appends them to a
// capped per-game journal list. The journal is an observation stream; a game
// cannot be restored from it.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// ChannelName returns the Pub/Sub channel of a game.
func ChannelName(gameID uuid.UUID) string {
	return fmt.Sprintf("game-events:%s", gameID.String())
}

// JournalKey returns the list key of a game's journal.
func JournalKey(gameID uuid.UUID) string {
	return fmt.Sprintf("game-journal:%s", gameID.String())
}

// PublishGameCreated publishes a game.created event
func (b *Broadcaster) PublishGameCreated(ctx context.Context, gameID uuid.UUID) error {
	return b.publishToGame(ctx, gameID, Event{Type: EventTypeGameCreated})
}

// PublishAction publishes a game.action event for one dispatched action
func (b *Broadcaster) PublishAction(ctx context.Context, gameID uuid.UUID, tick int, action string, steps int) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeGameAction,
		Tick: tick,
		Data: map[string]any{
			"action": action,
			"steps":  steps,
		},
	})
}

// PublishLog publishes a game.log event for one new log line
func (b *Broadcaster) PublishLog(ctx context.Context, gameID uuid.UUID, tick int, msg string) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeGameLog,
		Tick: tick,
		Data: map[string]any{"msg": msg},
	})
}

// PublishFailed publishes a game.failed event for a hard failure
func (b *Broadcaster) PublishFailed(ctx context.Context, gameID uuid.UUID, tick int, action string, errorMsg string) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeGameFailed,
		Tick: tick,
		Data: map[string]any{
			"action": action,
			"error":  errorMsg,
		},
	})
}

// PublishGameClosed publishes a game.closed event
func (b *Broadcaster) PublishGameClosed(ctx context.Context, gameID uuid.UUID, tick int) error {
	return b.publishToGame(ctx, gameID, Event{Type: EventTypeGameClosed, Tick: tick})
}

// Journal returns up to limit of the most recent journaled events of a game,
// oldest first. A limit of zero or less returns the whole journal.
func (b *Broadcaster) Journal(ctx context.Context, gameID uuid.UUID, limit int) ([]Event, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := b.redisClient.LRange(ctx, JournalKey(gameID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	out := make([]Event, 0, len(raw))
	for _, r := range raw {
		var e Event
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			b.logger.Warn("Skipping malformed journal entry", "error", err, "game_id", gameID)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// publishToGame publishes an event to the game-specific channel and journal
func (b *Broadcaster) publishToGame(ctx context.Context, gameID uuid.UUID, event Event) error {
	event.GameID = gameID.String()
	channel := ChannelName(gameID)
	key := JournalKey(gameID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = b.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, channel, data)
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -JournalLimit, -1)
		pipe.Expire(ctx, key, JournalTTL)
		return nil
	})
	if err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"tick", event.Tick,
	)

	return nil
}
