package cretro

import (
	"log/slog"

	"github.com/valerio/go-cretro/cretro/cpu"
	"github.com/valerio/go-cretro/cretro/fault"
	"github.com/valerio/go-cretro/cretro/timing"
)

const (
	MinDebugLevel = 0
	MaxDebugLevel = 4
)

// LevelFatal sits above slog.LevelError so that debug level 0 only lets
// records through that end the process.
const LevelFatal = slog.Level(12)

// Config holds the user facing interpreter settings.
type Config struct {
	// Frequency is the instruction rate in Hz.
	Frequency int
	// DebugLevel is the log verbosity, 0 (fatal only) to 4 (every instruction).
	DebugLevel int
	Quirks     cpu.Quirks

	// Random overrides the byte source for RND, mainly for tests.
	Random func() uint8
}

func DefaultConfig() Config {
	return Config{
		Frequency:  timing.DefaultFrequency,
		DebugLevel: 1,
	}
}

// Validate checks the configuration and returns a normalised copy. An
// out of range debug level is a config fault; an out of range frequency is
// reported and replaced by timing.FallbackFrequency.
func (c Config) Validate() (Config, error) {
	if c.DebugLevel < MinDebugLevel || c.DebugLevel > MaxDebugLevel {
		return c, fault.New(fault.Config, "debug level %d outside %d..%d", c.DebugLevel, MinDebugLevel, MaxDebugLevel)
	}
	if !timing.ValidFrequency(c.Frequency) {
		slog.Error("invalid frequency, using fallback", "frequency", c.Frequency, "fallback", timing.FallbackFrequency)
		c.Frequency = timing.FallbackFrequency
	}
	return c, nil
}

// LogLevel maps the debug level to a slog level.
func (c Config) LogLevel() slog.Level {
	switch {
	case c.DebugLevel <= 0:
		return LevelFatal
	case c.DebugLevel == 1:
		return slog.LevelError
	case c.DebugLevel == 2:
		return slog.LevelWarn
	case c.DebugLevel == 3:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
