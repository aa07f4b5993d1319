package detect

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/soocke/smile-booth-go/domain/camera"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type resultSink struct {
	mu      sync.Mutex
	results []Result
}

func (s *resultSink) put(r Result) {
	s.mu.Lock()
	s.results = append(s.results, r)
	s.mu.Unlock()
}

func (s *resultSink) counts() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r.FaceCount)
	}
	return out
}

func snapshot(seq uint64) camera.FrameSnapshot {
	return camera.FrameSnapshot{Image: image.NewRGBA(image.Rect(0, 0, 4, 4)), Sequence: seq, CapturedAt: time.Now()}
}

func waitForCount(t *testing.T, s *resultSink, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(s.counts()) >= n {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %d results, got %v", n, s.counts())
}

func TestAdapter_ClampsToMaxFaces(t *testing.T) {
	sink := &resultSink{}
	a := NewAdapter(NewScriptedDetector([]int{0, 3, -1}), DefaultOptions(), sink.put, discardLogger)
	defer a.Close()
	for seq := uint64(1); seq <= 3; seq++ {
		a.Submit(snapshot(seq))
		waitForCount(t, sink, int(seq))
	}
	if diff := cmp.Diff([]int{0, 1, 0}, sink.counts()); diff != "" {
		t.Fatalf("face counts mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapter_IgnoresRepeatedAndEmptyFrames(t *testing.T) {
	sink := &resultSink{}
	a := NewAdapter(NewScriptedDetector([]int{1}), DefaultOptions(), sink.put, discardLogger)
	defer a.Close()
	snap := snapshot(7)
	if !a.Submit(snap) {
		t.Fatalf("expected first submit to queue")
	}
	if a.Submit(snap) {
		t.Fatalf("expected repeated sequence to be ignored")
	}
	if a.Submit(camera.FrameSnapshot{}) {
		t.Fatalf("expected empty snapshot to be ignored")
	}
	waitForCount(t, sink, 1)
	if got := sink.results[0].Sequence; got != 7 {
		t.Fatalf("expected sequence 7, got %d", got)
	}
}

type failingDetector struct{ closed bool }

func (f *failingDetector) Detect(image.Image) (int, error) { return 0, errors.New("model crashed") }
func (f *failingDetector) Close() error                    { f.closed = true; return nil }

func TestAdapter_DetectorErrorsDropFrame(t *testing.T) {
	sink := &resultSink{}
	d := &failingDetector{}
	a := NewAdapter(d, Options{}, sink.put, discardLogger)
	a.Submit(snapshot(1))
	time.Sleep(20 * time.Millisecond)
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = a.Close()
	if len(sink.counts()) != 0 {
		t.Fatalf("expected no results from a failing detector")
	}
	if !d.closed {
		t.Fatalf("expected detector to be closed")
	}
	if a.Submit(snapshot(2)) {
		t.Fatalf("submit after close must be rejected")
	}
}

func TestScriptedDetector_RepeatsLastValue(t *testing.T) {
	d := NewScriptedDetector([]int{0, 2})
	var got []int
	for i := 0; i < 4; i++ {
		n, _ := d.Detect(nil)
		got = append(got, n)
	}
	if diff := cmp.Diff([]int{0, 2, 2, 2}, got); diff != "" {
		t.Fatalf("script mismatch (-want +got):\n%s", diff)
	}
	if n, _ := NewScriptedDetector(nil).Detect(nil); n != 0 {
		t.Fatalf("empty script must report 0, got %d", n)
	}
}

func TestOptions_Normalize(t *testing.T) {
	got := Options{MaxFaces: 0, MinDetectionConfidence: 2, MinTrackingConfidence: -1}.normalize()
	want := Options{MaxFaces: 1, MinDetectionConfidence: 1, MinTrackingConfidence: 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}
