package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/domain/booth"
	"github.com/soocke/smile-booth-go/domain/detect"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Camera.Source = config.SourceSynthetic
	cfg.Camera.Width, cfg.Camera.Height = 64, 48
	cfg.Camera.FPS = 100
	cfg.Detector.Kind = config.DetectorScript
	cfg.Detector.Script = []int{0, 0, 1, 0}
	return cfg.Scale(0.02)
}

type recorder struct {
	mu       sync.Mutex
	phases   []booth.Phase
	overlays []string
	captured int
	played   int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		Callbacks: booth.Callbacks{
			OnCapture:       func(booth.CapturedFrame) { r.mu.Lock(); r.captured++; r.mu.Unlock() },
			OnPlaybackFrame: func(booth.CapturedFrame) { r.mu.Lock(); r.played++; r.mu.Unlock() },
		},
		OnPhase: func(_, next booth.Phase) { r.mu.Lock(); r.phases = append(r.phases, next); r.mu.Unlock() },
		OnResult: func(_ detect.Result, text string) {
			r.mu.Lock()
			r.overlays = append(r.overlays, text)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.phases)
	return n >= 2 && r.phases[n-2] == booth.PhaseCoolingDown && r.phases[n-1] == booth.PhaseIdle
}

func TestPipeline_ScriptedSessionCompletes(t *testing.T) {
	rec := &recorder{}
	p, err := New(testConfig(), discardLogger, rec.hooks())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start()
	go p.Pump(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(3 * time.Second)
	for !rec.completed() {
		if time.Now().After(deadline) {
			t.Fatalf("session did not complete, phases %v", rec.phases)
		}
		time.Sleep(5 * time.Millisecond)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.captured != booth.FrameCapacity || rec.played == 0 {
		t.Fatalf("expected 3 captures and playback, got captured=%d played=%d", rec.captured, rec.played)
	}
	if len(rec.overlays) < 3 || rec.overlays[0] != "No face detected" || rec.overlays[2] != "2" {
		t.Fatalf("unexpected per-frame overlays %v", rec.overlays)
	}
}

func TestPipeline_DefaultConfigBuilds(t *testing.T) {
	if detect.DefaultKind != config.DetectorScript {
		t.Skip("cascade default needs the cascade XML on disk")
	}
	p, err := New(config.DefaultConfig(), discardLogger, Hooks{})
	if err != nil {
		t.Fatalf("default config must build a pipeline: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewDetector_CascadeErrorIsUntypedNil(t *testing.T) {
	cfg := testConfig()
	cfg.Detector.Kind = config.DetectorCascade
	cfg.Detector.CascadePath = "missing.xml"
	d, err := NewDetector(cfg)
	if d != nil {
		t.Fatalf("expected nil detector on error, got %#v", d)
	}
	if !errors.Is(err, detect.ErrDetectorUnavailable) {
		t.Fatalf("expected ErrDetectorUnavailable, got %v", err)
	}
	if _, err := New(cfg, discardLogger, Hooks{}); !errors.Is(err, detect.ErrDetectorUnavailable) {
		t.Fatalf("expected pipeline to surface ErrDetectorUnavailable, got %v", err)
	}
}
