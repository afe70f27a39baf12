package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-cretro/cretro/display"
	"github.com/valerio/go-cretro/cretro/memory"
	"github.com/valerio/go-cretro/cretro/video"
)

func loadedMemory(t *testing.T, program ...byte) *memory.Memory {
	t.Helper()
	mem := memory.New()
	require.NoError(t, mem.Load(program))
	return mem
}

func TestSnapshotAround(t *testing.T) {
	mem := loadedMemory(t, 0x60, 0x01, 0x61, 0x02, 0x62, 0x03)

	snap := SnapshotAround(mem, 0x202, 2, 3)
	assert.Equal(t, uint16(0x200), snap.StartAddr)
	assert.Equal(t, []uint8{0x60, 0x01, 0x61, 0x02, 0x62, 0x03}, snap.Bytes)
}

func TestSnapshotAround_clamps(t *testing.T) {
	mem := memory.New()

	low := SnapshotAround(mem, 0x002, 10, 1)
	assert.Equal(t, uint16(0x000), low.StartAddr)
	assert.Len(t, low.Bytes, 4)

	high := SnapshotAround(mem, 0xFFE, 2, 10)
	assert.Equal(t, uint16(0xFFC), high.StartAddr)
	assert.Len(t, high.Bytes, 4)

	// an odd window start is pulled onto the pc's parity
	odd := SnapshotAround(mem, 0x300, 3, 1)
	assert.Equal(t, uint16(0x2FE), odd.StartAddr)
}

func TestCreateDisassembly_centersOnPC(t *testing.T) {
	program := make([]byte, 0, 40)
	for n := 0; n < 20; n++ {
		program = append(program, 0x60, byte(n))
	}
	mem := loadedMemory(t, program...)
	snap := SnapshotAround(mem, 0x214, 20, 20)

	lines := CreateDisassembly(snap, 0x214, 5)
	require.Len(t, lines, 5)
	assert.Equal(t, uint16(0x210), lines[0].Address)
	assert.True(t, lines[2].IsCurrent)
	assert.Equal(t, "LD V0, $0A", lines[2].Instruction)
	for i, l := range lines {
		assert.Equal(t, i == 2, l.IsCurrent)
	}
}

func TestCreateDisassembly_edges(t *testing.T) {
	mem := loadedMemory(t, 0x00, 0xE0, 0x12, 0x00)
	snap := SnapshotAround(mem, 0x200, 0, 8)

	lines := CreateDisassembly(snap, 0x200, 3)
	require.Len(t, lines, 3)
	assert.True(t, lines[0].IsCurrent)
	assert.Equal(t, "CLS", lines[0].Instruction)
	assert.Equal(t, "JP $200", lines[1].Instruction)

	outside := CreateDisassembly(snap, 0x400, 3)
	require.Len(t, outside, 3)
	assert.Equal(t, "[PC outside snapshot range]", outside[2].Instruction)
	assert.True(t, outside[2].IsCurrent)

	assert.Nil(t, CreateDisassembly(nil, 0x200, 3))
}

func TestFrameImage(t *testing.T) {
	frame := video.NewFrameBuffer()
	frame.SetPixel(1, 0, video.OnColor)
	frame.SetPixel(0, 0, video.OffColor)

	img := FrameImage(frame, 2)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	on := img.RGBAAt(2, 1)
	assert.Equal(t, uint8(0xFF), on.R)
	assert.Equal(t, uint8(0xFF), on.A)
	off := img.RGBAAt(1, 1)
	assert.Equal(t, uint8(0x00), off.R)
	assert.Equal(t, uint8(0xFF), off.A)
}

func TestSaveFramePNGToDir(t *testing.T) {
	dir := t.TempDir()
	frame := video.NewFrameBuffer()
	frame.SetPixel(63, 31, video.OnColor)

	path, err := SaveFramePNGToDir(frame, "test", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64*display.SnapshotScale, img.Bounds().Dx())
	assert.Equal(t, 32*display.SnapshotScale, img.Bounds().Dy())
}

func TestSaveFramePNG_badPath(t *testing.T) {
	err := SaveFramePNG(video.NewFrameBuffer(), filepath.Join(t.TempDir(), "missing", "x.png"))
	assert.Error(t, err)
}

func TestDebuggerState_String(t *testing.T) {
	assert.Equal(t, "paused", DebuggerPaused.String())
	assert.Equal(t, "step frame", DebuggerStepFrame.String())
}
