package video

// Display is the 64x32 monochrome pixel grid. Sprites are XORed onto it,
// so drawing the same sprite twice at the same spot erases it.
type Display struct {
	pixels [FramebufferHeight][FramebufferWidth]bool
	dirty  bool
}

// NewDisplay returns a cleared display.
func NewDisplay() *Display {
	return &Display{dirty: true}
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.pixels = [FramebufferHeight][FramebufferWidth]bool{}
	d.dirty = true
}

// Draw XORs the sprite rows onto the grid with its top-left corner at (x, y).
// The origin wraps around the screen; rows running past the bottom edge wrap
// to the top while columns running past the right edge are clipped.
// Returns true if any lit pixel was turned off.
func (d *Display) Draw(x, y uint8, sprite []byte) (collision bool) {
	originX := int(x) % FramebufferWidth
	originY := int(y) % FramebufferHeight

	for row, data := range sprite {
		py := (originY + row) % FramebufferHeight

		for col := 0; col < 8; col++ {
			px := originX + col
			if px >= FramebufferWidth {
				break
			}

			if data&(0x80>>col) == 0 {
				continue
			}

			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	d.dirty = true
	return collision
}

// Pixel reports whether the pixel at (x, y) is lit.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[y][x]
}

// Dirty reports whether the grid changed since the last Render.
func (d *Display) Dirty() bool {
	return d.dirty
}

// Render writes the grid into the frame buffer using OnColor and OffColor.
func (d *Display) Render(fb *FrameBuffer) {
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			color := OffColor
			if d.pixels[y][x] {
				color = OnColor
			}
			fb.SetPixel(uint(x), uint(y), color)
		}
	}
	d.dirty = false
}
