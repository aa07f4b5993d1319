package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/soocke/smile-booth-go/domain/booth"
	"github.com/soocke/smile-booth-go/domain/detect"
)

func TestDefaultConfig_MatchesBoothDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if diff := cmp.Diff(booth.DefaultTiming(), cfg.BoothTiming()); diff != "" {
		t.Fatalf("timing mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(booth.DefaultMessages(), cfg.BoothMessages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if cfg.Messages.InsufficientFrames != "Not enough frames." {
		t.Fatalf("unexpected insufficient frames text %q", cfg.Messages.InsufficientFrames)
	}
	if r := cfg.Region(); r.Dx() != 640 || r.Dy() != 480 {
		t.Fatalf("unexpected camera region %v", r)
	}
	if cfg.Detector.Kind != detect.DefaultKind {
		t.Fatalf("expected build default detector %q, got %q", detect.DefaultKind, cfg.Detector.Kind)
	}
	if o := cfg.DetectOptions(); o.MaxFaces != 1 || o.MinDetectionConfidence != 0.5 || o.MinTrackingConfidence != 0.5 {
		t.Fatalf("unexpected detector options %+v", o)
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{}
	c.Camera.Source = "webcam"
	c.Detector.MinDetectionConfidence = 3
	c.Timing.ReviewHold = -1
	_ = c.Validate()
	if c.Camera.Source != SourceScreen || c.Detector.Kind != detect.DefaultKind {
		t.Fatalf("expected fallback kinds, got %q/%q", c.Camera.Source, c.Detector.Kind)
	}
	if c.Detector.MinDetectionConfidence != 0.5 || c.Timing.ReviewHold != 0 {
		t.Fatalf("expected clamped values, got %+v", c)
	}
	if c.Timing.TimeUnit != time.Second || len(c.Timing.CountdownMessages) != 3 {
		t.Fatalf("expected default timing, got %+v", c.Timing)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "booth.yaml")
	data := "timing:\n  time_unit: 100ms\n  cooldown: 3\ncamera:\n  source: synthetic\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOOTH_CAMERA_FPS", "15")
	t.Setenv("BOOTH_DETECTOR_SCRIPT", "0,1,1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Camera.Source != SourceSynthetic || cfg.Camera.FPS != 15 {
		t.Fatalf("unexpected camera %+v", cfg.Camera)
	}
	if got := cfg.BoothTiming().Cooldown; got != 300*time.Millisecond {
		t.Fatalf("expected 300ms cooldown, got %v", got)
	}
	if got := cfg.BoothTiming().CountdownStep; got != 100*time.Millisecond {
		t.Fatalf("expected untouched keys to keep defaults, got %v", got)
	}
	if diff := cmp.Diff([]int{0, 1, 1}, cfg.Detector.Script); diff != "" {
		t.Fatalf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFileAndBadYAML(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "absent.yaml")); err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("timing: [unclosed"), 0o644)
	cfg, err := Load(bad)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg.Camera.Width != 640 {
		t.Fatalf("expected defaults alongside error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booth.yaml")
	cfg := DefaultConfig()
	cfg.Timing.Cooldown = 2.5
	cfg.SetRegion(cfg.Region().Add(image.Pt(10, 20)))
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestScale(t *testing.T) {
	cfg := DefaultConfig()
	fast := cfg.Scale(0.1)
	if fast.BoothTiming().CountdownStep != 100*time.Millisecond {
		t.Fatalf("unexpected scaled step %v", fast.BoothTiming().CountdownStep)
	}
	if cfg.Timing.TimeUnit != time.Second {
		t.Fatalf("scale must not modify the receiver")
	}
}
