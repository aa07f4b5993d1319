package camera

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/vova616/screenshot"
)

// swapped in tests
var (
	screenBounds = screenshot.ScreenRect
	captureRect  = screenshot.CaptureRect
)

// NewScreenSource grabs a region of the primary display.
func NewScreenSource(opts Options, logger *slog.Logger) *Service {
	return NewService(GrabScreen, opts, logger)
}

// GrabScreen captures region clipped to the screen bounds.
func GrabScreen(region image.Rectangle) (*image.RGBA, error) {
	screen, err := screenBounds()
	if err != nil {
		return nil, fmt.Errorf("camera: screen bounds: %w", err)
	}
	r := region.Intersect(screen)
	if r.Empty() {
		return nil, fmt.Errorf("camera: region %v outside screen %v", region, screen)
	}
	img, err := captureRect(r)
	if err != nil {
		return nil, fmt.Errorf("camera: capture %v: %w", r, err)
	}
	return img, nil
}
