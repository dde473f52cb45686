package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcreedcmu/paperwork-game/internal/config"
	"github.com/jcreedcmu/paperwork-game/internal/logger"
	"github.com/jcreedcmu/paperwork-game/internal/services/events"
	"github.com/jcreedcmu/paperwork-game/internal/session"
	"github.com/jcreedcmu/paperwork-game/pkg/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	log := logger.Setup(cfg, logFile)
	log.Info("Starting paperwork console", "environment", cfg.Environment, "outbox_period", cfg.OutboxPeriod)

	content, err := loadContent(cfg.ContentFile)
	if err != nil {
		log.Error("Failed to load content", "error", err, "file", cfg.ContentFile)
		fmt.Fprintf(os.Stderr, "Failed to load content: %v\n", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	opts := []session.Option{
		session.WithStateOptions(game.WithSeed(seed), game.WithOutboxPeriod(cfg.OutboxPeriod)),
	}

	ctx := context.Background()
	if cfg.RedisURL != "" {
		rdb, err := events.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			logger.WithError(log, err).Warn("Event broadcasting disabled")
		} else {
			defer func() {
				_ = rdb.Close() // Ignore error in defer
			}()
			opts = append(opts, session.WithPublisher(events.NewBroadcaster(rdb, log)))
		}
	}

	sessions := session.NewManager(content, log, opts...)
	gameID, err := sessions.Create(ctx)
	if err != nil {
		log.Error("Failed to create game", "error", err)
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	log.Info("Game started", "game_id", gameID, "seed", seed)

	p := tea.NewProgram(NewConsoleUI(sessions, gameID, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("Program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	if err := sessions.Close(ctx, gameID); err != nil {
		log.Warn("Failed to close game", "error", err)
	}
}

func loadContent(path string) (*game.Content, error) {
	if path == "" {
		return game.DefaultContent()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore error in defer
	}()
	return game.LoadContent(f)
}

