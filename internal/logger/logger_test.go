package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	saved := L
	t.Cleanup(func() { L = saved })
}

func TestInitDisabledDiscards(t *testing.T) {
	restore(t)
	Init(Options{Enabled: false})
	assert.False(t, L.Enabled(t.Context(), slog.LevelError))
	Error("dropped") // must not panic
}

func TestInitText(t *testing.T) {
	restore(t)
	var out bytes.Buffer
	Init(Options{Enabled: true, Writer: &out, Level: slog.LevelDebug})

	Debug("collection", "reclaimed", 240)
	assert.Contains(t, out.String(), "level=DEBUG")
	assert.Contains(t, out.String(), "msg=collection")
	assert.Contains(t, out.String(), "reclaimed=240")
}

func TestInitJSON(t *testing.T) {
	restore(t)
	var out bytes.Buffer
	Init(Options{Enabled: true, Writer: &out, JSON: true})

	Debug("below level")
	Warn("pool growth capped", "pool", "pair")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "pair", rec["pool"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
