package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/valerio/go-cretro/cretro/display"
	"github.com/valerio/go-cretro/cretro/video"
)

// TakeSnapshot handles the snapshot hotkey for backends
func TakeSnapshot(frame *video.FrameBuffer, baseName string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}
	if baseName == "" {
		baseName = "cretro_snapshot"
	}

	if _, err := SaveFramePNGToDir(frame, baseName, ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage converts a framebuffer to an image, each pixel scaled to a
// scale x scale square.
func FrameImage(frame *video.FrameBuffer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := int(frame.Width()), int(frame.Height())
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := pixelToRGBA(frame.GetPixel(uint(x), uint(y)))
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

// SaveFramePNG writes the framebuffer to path as a PNG.
func SaveFramePNG(frame *video.FrameBuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create file %s", path)
	}
	defer file.Close()

	if err := png.Encode(file, FrameImage(frame, display.SnapshotScale)); err != nil {
		return errors.Wrap(err, "failed to encode PNG")
	}
	return nil
}

// SaveFramePNGToDir saves a framebuffer as PNG with timestamp to a specific
// directory, the working directory when empty. Returns the written path.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) (string, error) {
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get current directory")
		}
		outputDir = cwd
	}

	timestamp := time.Now().Format("20060102_150405.000")
	filePath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", baseName, timestamp))
	if err := SaveFramePNG(frame, filePath); err != nil {
		return "", err
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", frame.Width(), frame.Height()), "format", "PNG")
	return filePath, nil
}

func pixelToRGBA(pixel uint32) color.RGBA {
	return color.RGBA{
		R: uint8((pixel >> display.RGBARShift) & display.RGBAColorMask),
		G: uint8((pixel >> display.RGBAGShift) & display.RGBAColorMask),
		B: uint8((pixel >> display.RGBABShift) & display.RGBAColorMask),
		A: uint8(pixel & display.RGBAColorMask),
	}
}
