package detect

import (
	"errors"
	"image"
	"time"
)

// ErrDetectorUnavailable is returned when the requested detector backend was
// not compiled into the binary.
var ErrDetectorUnavailable = errors.New("detect: detector unavailable")

// Detector counts faces in a frame.
type Detector interface {
	// Detect returns the number of faces found in frame.
	Detect(frame image.Image) (int, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Options holds configuration options for face detection.
type Options struct {
	// MaxFaces caps the reported face count (default: 1).
	MaxFaces int

	// MinDetectionConfidence is the minimum detection confidence (0.0-1.0).
	MinDetectionConfidence float64

	// MinTrackingConfidence is the minimum tracking confidence (0.0-1.0).
	MinTrackingConfidence float64
}

// DefaultOptions returns Options with the booth defaults.
func DefaultOptions() Options {
	return Options{
		MaxFaces:               1,
		MinDetectionConfidence: 0.5,
		MinTrackingConfidence:  0.5,
	}
}

// normalize clamps o into valid ranges.
func (o Options) normalize() Options {
	if o.MaxFaces < 1 {
		o.MaxFaces = 1
	}
	o.MinDetectionConfidence = clamp01(o.MinDetectionConfidence)
	o.MinTrackingConfidence = clamp01(o.MinTrackingConfidence)
	return o
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Result is one processed frame.
type Result struct {
	Frame     image.Image
	Sequence  uint64
	FaceCount int
	Duration  time.Duration
}
