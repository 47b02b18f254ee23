package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	log.Debug().Int("tab_id", 4).Msg("merged")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "merged", entry["message"])
	assert.Equal(t, float64(4), entry["tab_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.WarnLevel, Format: "json", Output: &buf})

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("TABGROUPS_LOG_LEVEL", "error")
	t.Setenv("TABGROUPS_LOG_FORMAT", "json")

	log := NewFromEnv()

	assert.Equal(t, zerolog.ErrorLevel, log.GetLevel())
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf}))
	ctx = WithComponent(ctx, "usecase")
	ctx = WithStripID(ctx, "work")
	ctx = WithTabID(ctx, 7)

	FromContext(ctx).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "usecase", entry["component"])
	assert.Equal(t, "work", entry["strip_id"])
	assert.Equal(t, float64(7), entry["tab_id"])
}

func TestFromContext_NoLoggerIsUsable(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info().Msg("dropped")
	})
}
