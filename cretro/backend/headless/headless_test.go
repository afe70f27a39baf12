package headless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-cretro/cretro/backend"
	"github.com/valerio/go-cretro/cretro/backend/headless"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/input/event"
	"github.com/valerio/go-cretro/cretro/video"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("normal operation", func(t *testing.T) {
		h := headless.New(3, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.BackendConfig{Title: "Test"}))

		frame := video.NewFrameBuffer()
		for i := 0; i < 3; i++ {
			events, err := h.Update(frame)
			require.NoError(t, err)

			if i < 2 {
				assert.Empty(t, events)
			} else {
				require.Len(t, events, 1)
				assert.Equal(t, action.EmulatorQuit, events[0].Action)
				assert.Equal(t, event.Press, events[0].Type)
			}
		}
		assert.Equal(t, 3, h.Frames())
		assert.NoError(t, h.Cleanup())
	})

	t.Run("requires frames", func(t *testing.T) {
		h := headless.New(0, headless.SnapshotConfig{})
		assert.Error(t, h.Init(backend.BackendConfig{}))
	})
}

func TestHeadlessBackend_snapshots(t *testing.T) {
	dir := t.TempDir()
	cfg, err := headless.CreateSnapshotConfig(2, dir, "/roms/maze.ch8")
	require.NoError(t, err)
	assert.Equal(t, "maze", cfg.ProgramName)

	h := headless.New(5, cfg)
	require.NoError(t, h.Init(backend.BackendConfig{}))

	frame := video.NewFrameBuffer()
	for range 5 {
		_, err := h.Update(frame)
		require.NoError(t, err)
	}

	// frames 2 and 4 by interval, 5 as the final frame
	for _, n := range []string{"2", "4", "5"} {
		matches, err := filepath.Glob(filepath.Join(dir, "maze_frame_"+n+"_*.png"))
		require.NoError(t, err)
		assert.Len(t, matches, 1, "frame %s", n)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestCreateSnapshotConfig(t *testing.T) {
	disabled, err := headless.CreateSnapshotConfig(0, "", "x.ch8")
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	temp, err := headless.CreateSnapshotConfig(1, "", "x.ch8")
	require.NoError(t, err)
	defer os.RemoveAll(temp.Directory)
	assert.DirExists(t, temp.Directory)

	nested := filepath.Join(t.TempDir(), "a", "b")
	created, err := headless.CreateSnapshotConfig(1, nested, "x.ch8")
	require.NoError(t, err)
	assert.Equal(t, nested, created.Directory)
	assert.DirExists(t, nested)
}
