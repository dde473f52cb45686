package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcreedcmu/paperwork-game/internal/config"
)

func TestSetup_ProductionWritesJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)
	WithError(WithGameID(l, "g-1"), errors.New("boom")).Info("dispatched")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "dispatched", rec["msg"])
	assert.Equal(t, "g-1", rec["game_id"])
	assert.Equal(t, "boom", rec["error"])
}

func TestSetup_DevelopmentWritesTextAndFiltersLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := Setup(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Same(t, l, slog.Default())
}
