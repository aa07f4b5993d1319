package camera

import (
	"errors"
	"image"
	"time"
)

// ErrNoFrame is returned by a grabber that has nothing to deliver yet.
var ErrNoFrame = errors.New("camera: no frame")

// FrameSnapshot carries the latest captured frame and metadata. Image is
// never written after the snapshot is published.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Stats summarises grab loop behaviour for instrumentation.
type Stats struct {
	Captures       uint64
	Skipped        uint64
	AvgCapture     time.Duration
	LastCapture    time.Time
	LatestFrameAge time.Duration
	Sequence       uint64
}

// Source provides live frames to the booth.
type Source interface {
	Start()
	Stop()
	Running() bool
	LatestFrame() FrameSnapshot
	Snapshot() image.Image
	Stats() Stats
	SetRegion(image.Rectangle)
	Region() image.Rectangle
}

// Grabber produces one frame of region. Implementations return a freshly
// allocated image on every call.
type Grabber func(region image.Rectangle) (*image.RGBA, error)

// Options configures a Service.
type Options struct {
	Region image.Rectangle
	FPS    int
}

const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFPS    = 30
)

// DefaultRegion is the 640x480 rectangle anchored at the origin.
func DefaultRegion() image.Rectangle { return image.Rect(0, 0, DefaultWidth, DefaultHeight) }
