package camera

import (
	"image"
	"image/color"
	"log/slog"
	"sync/atomic"
)

// NewSyntheticSource renders a moving gradient for headless runs.
func NewSyntheticSource(opts Options, logger *slog.Logger) *Service {
	var frame atomic.Uint64
	return NewService(func(region image.Rectangle) (*image.RGBA, error) {
		return Gradient(region.Dx(), region.Dy(), int(frame.Add(1))), nil
	}, opts, logger)
}

// Gradient returns a w x h frame whose colours shift with step.
func Gradient(w, h, step int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x + step*4) * 255 / (w + 1)),
				G: uint8(y * 255 / h),
				B: uint8(step * 3),
				A: 0xFF,
			})
		}
	}
	return img
}
