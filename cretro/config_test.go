package cretro

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-cretro/cretro/fault"
	"github.com/valerio/go-cretro/cretro/timing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantHz    int
		wantFault bool
	}{
		{name: "defaults", config: DefaultConfig(), wantHz: 500},
		{name: "max frequency", config: Config{Frequency: timing.MaxFrequency, DebugLevel: 4}, wantHz: timing.MaxFrequency},
		{name: "zero frequency falls back", config: Config{Frequency: 0}, wantHz: timing.FallbackFrequency},
		{name: "negative frequency falls back", config: Config{Frequency: -20}, wantHz: timing.FallbackFrequency},
		{name: "too fast falls back", config: Config{Frequency: timing.MaxFrequency + 1}, wantHz: timing.FallbackFrequency},
		{name: "debug level too high", config: Config{Frequency: 500, DebugLevel: 5}, wantFault: true},
		{name: "debug level negative", config: Config{Frequency: 500, DebugLevel: -1}, wantFault: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.Validate()
			if tt.wantFault {
				require.Error(t, err)
				assert.True(t, fault.Is(err, fault.Config))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHz, got.Frequency)
		})
	}
}

func TestNew_rejectsBadConfig(t *testing.T) {
	_, err := New(Config{Frequency: 500, DebugLevel: 9})
	assert.True(t, fault.Is(err, fault.Config))
}

func TestConfig_LogLevel(t *testing.T) {
	levels := map[int]slog.Level{
		0: LevelFatal,
		1: slog.LevelError,
		2: slog.LevelWarn,
		3: slog.LevelInfo,
		4: slog.LevelDebug,
	}
	for debugLevel, want := range levels {
		assert.Equal(t, want, Config{DebugLevel: debugLevel}.LogLevel(), "level %d", debugLevel)
	}
	assert.Greater(t, LevelFatal, slog.LevelError)
}
