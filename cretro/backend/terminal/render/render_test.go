package render

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-cretro/cretro/video"
)

func TestLogBuffer_wrapsNewestFirst(t *testing.T) {
	lb := NewLogBuffer(3)
	assert.Nil(t, lb.GetRecent(5))

	for _, msg := range []string{"a", "b", "c", "d"} {
		lb.Add(LogEntry{Message: msg})
	}

	recent := lb.GetRecent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message)
	assert.Equal(t, "c", recent[1].Message)
	assert.Equal(t, "b", recent[2].Message)

	assert.Len(t, lb.GetRecent(2), 2)
	assert.Equal(t, 3, lb.Len())

	lb.Clear()
	assert.Equal(t, 0, lb.Len())
	assert.Nil(t, lb.GetRecent(1))
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := slog.New(NewLogBufferHandler(lb, level))

	logger.Debug("hidden")
	logger.Info("shown", "pc", 0x200)
	logger.With("component", "cpu").WithGroup("op").Warn("grouped", "x", 3)

	recent := lb.GetRecent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "grouped component=cpu op.x=3", recent[0].Message)
	assert.Equal(t, "shown pc=512", recent[1].Message)

	level.Set(slog.LevelDebug)
	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelDebug))
}

func TestFormatLogEntry(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "13:04:05 [DBG] msg"},
		{slog.LevelInfo, "13:04:05 [INF] msg"},
		{slog.LevelWarn, "13:04:05 [WRN] msg"},
		{slog.LevelError, "13:04:05 [ERR] msg"},
		{levelFatal, "13:04:05 [FTL] msg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLogEntry(LogEntry{Time: ts, Level: tt.level, Message: "msg"}))
	}
}

func TestHalfBlockChar(t *testing.T) {
	assert.Equal(t, '█', HalfBlockChar(true, true))
	assert.Equal(t, '▀', HalfBlockChar(true, false))
	assert.Equal(t, '▄', HalfBlockChar(false, true))
	assert.Equal(t, ' ', HalfBlockChar(false, false))

	assert.True(t, PixelLit(uint32(video.OnColor)))
	assert.False(t, PixelLit(uint32(video.OffColor)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "he...", Truncate("hello world", 5))
	assert.Equal(t, "he", Truncate("hello", 2))
	assert.Equal(t, "", Truncate("hello", 0))
}
