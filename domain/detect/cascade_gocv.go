//go:build gocv

package detect

import (
	"fmt"
	"image"
	"math"
	"sync"

	"gocv.io/x/gocv"
)

// DefaultKind is the detector used when the config names none.
const DefaultKind = "cascade"

// CascadeDetector finds frontal faces with an OpenCV Haar cascade.
type CascadeDetector struct {
	mu           sync.Mutex
	classifier   gocv.CascadeClassifier
	minNeighbors int
	minSize      image.Point
}

// NewCascadeDetector loads the cascade XML at path. MinDetectionConfidence
// maps onto the classifier's neighbour threshold.
func NewCascadeDetector(path string, opts Options) (*CascadeDetector, error) {
	opts = opts.normalize()
	c := gocv.NewCascadeClassifier()
	if !c.Load(path) {
		_ = c.Close()
		return nil, fmt.Errorf("detect: load cascade %q: %w", path, ErrDetectorUnavailable)
	}
	return &CascadeDetector{
		classifier:   c,
		minNeighbors: 1 + int(math.Round(opts.MinDetectionConfidence*6)),
		minSize:      image.Pt(48, 48),
	}, nil
}

func (d *CascadeDetector) Detect(frame image.Image) (int, error) {
	if frame == nil {
		return 0, nil
	}
	rgba, err := gocv.ImageToMatRGBA(frame)
	if err != nil {
		return 0, fmt.Errorf("detect: convert frame: %w", err)
	}
	defer rgba.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(rgba, &gray, gocv.ColorRGBAToGray)

	d.mu.Lock()
	defer d.mu.Unlock()
	rects := d.classifier.DetectMultiScaleWithParams(gray, 1.1, d.minNeighbors, 0, d.minSize, image.Point{})
	return len(rects), nil
}

func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}

var _ Detector = (*CascadeDetector)(nil)
