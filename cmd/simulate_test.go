package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/soocke/smile-booth-go/config"
)

func TestSimulate_CompletesSessions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Camera.Source = config.SourceSynthetic
	cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.FPS = 64, 48, 100
	cfg.Detector.Kind = config.DetectorScript
	cfg.Detector.Script = []int{0, 1}
	cfg = cfg.Scale(0.02)

	var out bytes.Buffer
	logger := newLogger(&out, logLevel(true), "text")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	n, err := simulate(ctx, cfg, 2, logger)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 sessions, got %d (%v)", n, err)
	}
	logs := out.String()
	for _, want := range []string{"countdown", "captured photo", "session completed"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("expected %q in logs", want)
		}
	}
}

func TestSimulate_TimesOut(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Camera.Source = config.SourceSynthetic
	cfg.Detector.Kind = config.DetectorScript
	cfg.Detector.Script = []int{0}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	n, err := simulate(ctx, cfg, 1, newLogger(&bytes.Buffer{}, logLevel(false), "json"))
	if err == nil || n != 0 {
		t.Fatalf("expected timeout error, got n=%d err=%v", n, err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "booth dev") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
