// Package pipeline wires the camera, the face detector and the booth engine
// together. It has no UI dependency so the GUI and headless runs share it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/domain/booth"
	"github.com/soocke/smile-booth-go/domain/camera"
	"github.com/soocke/smile-booth-go/domain/detect"
)

// Hooks receives pipeline output. Callbacks and OnPhase run on the engine
// goroutine; OnResult runs on the detection worker.
type Hooks struct {
	booth.Callbacks
	OnPhase  booth.PhaseListener
	OnResult func(res detect.Result, overlay string)
}

// Pipeline owns one camera source, detector worker and engine.
type Pipeline struct {
	Camera   *camera.Service
	Detector detect.Detector
	Adapter  *detect.Adapter
	Engine   *booth.Engine

	logger    *slog.Logger
	closeOnce sync.Once
}

// NewCamera builds the configured frame source.
func NewCamera(cfg *config.Config, logger *slog.Logger) *camera.Service {
	opts := camera.Options{Region: cfg.Region(), FPS: cfg.Camera.FPS}
	if cfg.Camera.Source == config.SourceSynthetic {
		return camera.NewSyntheticSource(opts, logger)
	}
	return camera.NewScreenSource(opts, logger)
}

// NewDetector builds the configured detector.
func NewDetector(cfg *config.Config) (detect.Detector, error) {
	switch cfg.Detector.Kind {
	case config.DetectorScript:
		return detect.NewScriptedDetector(cfg.Detector.Script), nil
	default:
		d, err := detect.NewCascadeDetector(cfg.Detector.CascadePath, cfg.DetectOptions())
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// New builds a pipeline from cfg. Nothing runs until Start.
func New(cfg *config.Config, logger *slog.Logger, hooks Hooks) (*Pipeline, error) {
	d, err := NewDetector(cfg)
	if err != nil {
		if errors.Is(err, detect.ErrDetectorUnavailable) {
			return nil, fmt.Errorf("pipeline: %w (use detector.kind=script or build with -tags gocv)", err)
		}
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if cfg.Detector.Kind == config.DetectorScript && cfg.Camera.Source == config.SourceScreen {
		logger.Warn("scripted detector in use, camera frames are not analysed", "script", cfg.Detector.Script)
	}
	p := &Pipeline{Camera: NewCamera(cfg, logger), Detector: d, logger: logger}
	p.Engine = booth.NewEngine(cfg.BoothTiming(), cfg.BoothMessages(), p.Camera, hooks.Callbacks, logger)
	if hooks.OnPhase != nil {
		p.Engine.AddListener(hooks.OnPhase)
	}
	p.Adapter = detect.NewAdapter(d, cfg.DetectOptions(), func(res detect.Result) {
		text := p.Engine.HandleDetection(booth.DetectionResult{FaceCount: res.FaceCount})
		if hooks.OnResult != nil {
			hooks.OnResult(res, text)
		}
	}, logger)
	return p, nil
}

// Start begins a fresh session, starting the camera if needed.
func (p *Pipeline) Start() {
	p.Camera.Start()
	p.Engine.Start()
}

// Stop halts the session and the camera.
func (p *Pipeline) Stop() {
	p.Engine.Halt()
	p.Camera.Stop()
}

// Pump submits the latest camera frame to the detector every interval
// until ctx is done. The GUI submits from its own tick instead.
func (p *Pipeline) Pump(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if p.Camera.Running() {
				p.Adapter.Submit(p.Camera.LatestFrame())
			}
		}
	}
}

// Close releases everything. Idempotent.
func (p *Pipeline) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.Camera.Stop()
		err = p.Adapter.Close()
		p.Engine.Close()
	})
	return err
}
