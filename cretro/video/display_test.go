package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func countLit(d *Display) int {
	lit := 0
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			if d.Pixel(x, y) {
				lit++
			}
		}
	}
	return lit
}

func TestDisplay_DrawOnClearScreen(t *testing.T) {
	d := NewDisplay()
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0} // "0"

	collision := d.Draw(10, 5, sprite)

	assert.False(t, collision)
	assert.True(t, d.Pixel(10, 5))
	assert.True(t, d.Pixel(13, 5))
	assert.False(t, d.Pixel(14, 5))
	assert.True(t, d.Pixel(10, 6))
	assert.False(t, d.Pixel(11, 6))
	assert.Equal(t, 14, countLit(d))
}

func TestDisplay_DrawTwiceRestores(t *testing.T) {
	d := NewDisplay()
	d.Draw(0, 0, []byte{0x81}) // unrelated pixels already lit
	before := d.pixels

	sprite := []byte{0x3C, 0x42, 0x81, 0x42, 0x3C}
	first := d.Draw(20, 10, sprite)
	second := d.Draw(20, 10, sprite)

	assert.False(t, first)
	assert.True(t, second)
	assert.Equal(t, before, d.pixels)
}

func TestDisplay_DrawPartialOverlap(t *testing.T) {
	d := NewDisplay()
	d.Draw(0, 0, []byte{0x80})

	collision := d.Draw(0, 0, []byte{0xC0})

	assert.True(t, collision)
	assert.False(t, d.Pixel(0, 0))
	assert.True(t, d.Pixel(1, 0))
}

func TestDisplay_DrawWrapping(t *testing.T) {
	tests := []struct {
		name      string
		x, y      uint8
		sprite    []byte
		wantLit   [][2]int
		wantTotal int
	}{
		{
			name:      "origin wraps horizontally",
			x:         64 + 3,
			y:         0,
			sprite:    []byte{0x80},
			wantLit:   [][2]int{{3, 0}},
			wantTotal: 1,
		},
		{
			name:      "origin wraps vertically",
			x:         0,
			y:         32 + 7,
			sprite:    []byte{0x80},
			wantLit:   [][2]int{{0, 7}},
			wantTotal: 1,
		},
		{
			name:      "columns clip at right edge",
			x:         60,
			y:         0,
			sprite:    []byte{0xFF},
			wantLit:   [][2]int{{60, 0}, {61, 0}, {62, 0}, {63, 0}},
			wantTotal: 4,
		},
		{
			name:      "rows wrap at bottom edge",
			x:         0,
			y:         31,
			sprite:    []byte{0x80, 0x80, 0x80},
			wantLit:   [][2]int{{0, 31}, {0, 0}, {0, 1}},
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDisplay()
			d.Draw(tt.x, tt.y, tt.sprite)

			for _, p := range tt.wantLit {
				assert.True(t, d.Pixel(p[0], p[1]), "pixel (%d,%d)", p[0], p[1])
			}
			assert.Equal(t, tt.wantTotal, countLit(d))
		})
	}
}

func TestDisplay_Clear(t *testing.T) {
	d := NewDisplay()
	d.Draw(5, 5, []byte{0xFF, 0xFF})
	d.Clear()

	assert.Equal(t, 0, countLit(d))
}

func TestDisplay_Render(t *testing.T) {
	d := NewDisplay()
	fb := NewFrameBuffer()
	d.Draw(1, 2, []byte{0x80})
	assert.True(t, d.Dirty())

	d.Render(fb)

	assert.False(t, d.Dirty())
	assert.Equal(t, uint32(OnColor), fb.GetPixel(1, 2))
	assert.Equal(t, uint32(OffColor), fb.GetPixel(0, 0))
	assert.Len(t, fb.ToSlice(), FramebufferSize)
}
