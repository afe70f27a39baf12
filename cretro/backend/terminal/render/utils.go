package render

import "github.com/valerio/go-cretro/cretro/video"

// PixelLit reports whether a framebuffer pixel is on.
func PixelLit(pixel uint32) bool {
	return pixel == uint32(video.OnColor)
}

// HalfBlockChar returns the character drawing two vertically stacked pixels
// in a single terminal cell, using the foreground for lit halves.
func HalfBlockChar(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// Truncate shortens s to at most width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}
