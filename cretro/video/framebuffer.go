package video

// Color is a packed RGBA value as stored in a FrameBuffer.
type Color uint32

const (
	// OnColor is used for lit pixels.
	OnColor Color = 0xFFFFFFFF
	// OffColor is used for unlit pixels.
	OffColor Color = 0x000000FF
)

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

// FrameBuffer is the rendered, colored version of the display handed to backends.
type FrameBuffer struct {
	width  uint
	height uint
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer matching the display resolution.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		width:  FramebufferWidth,
		height: FramebufferHeight,
		buffer: make([]uint32, FramebufferSize),
	}
}

func (fb *FrameBuffer) Width() uint  { return fb.width }
func (fb *FrameBuffer) Height() uint { return fb.height }

func (fb *FrameBuffer) GetPixel(x, y uint) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y uint, color Color) {
	fb.buffer[y*fb.width+x] = uint32(color)
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}
