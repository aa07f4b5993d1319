//go:build !gocv

package detect

import (
	"fmt"
	"image"
)

// DefaultKind is the detector used when the config names none. Without
// OpenCV the scripted detector is the only one that can run.
const DefaultKind = "script"

// CascadeDetector is only available in builds tagged gocv.
type CascadeDetector struct{}

func NewCascadeDetector(path string, _ Options) (*CascadeDetector, error) {
	return nil, fmt.Errorf("detect: cascade %q needs a gocv build: %w", path, ErrDetectorUnavailable)
}

func (*CascadeDetector) Detect(image.Image) (int, error) { return 0, ErrDetectorUnavailable }

func (*CascadeDetector) Close() error { return nil }

var _ Detector = (*CascadeDetector)(nil)
