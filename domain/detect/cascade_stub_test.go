//go:build !gocv

package detect

import (
	"errors"
	"image"
	"testing"
)

func TestNewCascadeDetector_Unavailable(t *testing.T) {
	d, err := NewCascadeDetector("haarcascade_frontalface_default.xml", DefaultOptions())
	if d != nil || !errors.Is(err, ErrDetectorUnavailable) {
		t.Fatalf("expected ErrDetectorUnavailable, got %v", err)
	}
}

func TestCascadeDetector_StubNeverCounts(t *testing.T) {
	var d CascadeDetector
	n, err := d.Detect(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if n != 0 || !errors.Is(err, ErrDetectorUnavailable) {
		t.Fatalf("expected 0 faces and ErrDetectorUnavailable, got %d, %v", n, err)
	}
	if DefaultKind != "script" {
		t.Fatalf("expected script default without gocv, got %q", DefaultKind)
	}
}
