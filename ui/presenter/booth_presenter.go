package presenter

import (
	"image"
	"log/slog"
	"sync"

	"github.com/soocke/smile-booth-go/domain/camera"
	"github.com/soocke/smile-booth-go/domain/detect"
	"github.com/soocke/smile-booth-go/ui/images"
	"github.com/soocke/smile-booth-go/ui/model"
)

// FrameSource supplies the most recent camera frame.
type FrameSource interface {
	Running() bool
	LatestFrame() camera.FrameSnapshot
}

// FrameSubmitter queues frames for face detection.
type FrameSubmitter interface {
	Submit(camera.FrameSnapshot) bool
}

// LiveView shows the annotated camera feed.
type LiveView interface {
	UpdateLive(img image.Image)
}

// BoothPresenter moves frames from the camera to the detector and shows each
// processed frame with the overlay the engine chose for it.
type BoothPresenter struct {
	Enabled func() bool
	Source  FrameSource
	Detect  FrameSubmitter
	View    LiveView
	Model   *model.DetectionModel
	logger  *slog.Logger

	mu       sync.Mutex
	rendered image.Image
}

func NewBoothPresenter(enabled func() bool, view LiveView, m *model.DetectionModel, logger *slog.Logger) *BoothPresenter {
	return &BoothPresenter{Enabled: enabled, View: view, Model: m, logger: logger}
}

// Bind sets the camera and the detection adapter. Both are built after the
// presenter because OnResult is their sink.
func (p *BoothPresenter) Bind(source FrameSource, d FrameSubmitter) {
	p.Source = source
	p.Detect = d
}

// ProcessFrame runs on the UI tick: it shows the newest rendered frame and
// submits the latest camera frame for detection.
func (p *BoothPresenter) ProcessFrame() {
	if p == nil || p.View == nil {
		return
	}
	p.mu.Lock()
	img := p.rendered
	p.rendered = nil
	p.mu.Unlock()
	if img != nil {
		p.View.UpdateLive(img)
	}

	if p.Enabled == nil || !p.Enabled() || p.Source == nil || !p.Source.Running() || p.Detect == nil {
		return
	}
	p.Detect.Submit(p.Source.LatestFrame())
}

// OnResult runs on the detector worker after the engine processed res and
// chose text for it. The annotated copy is queued for the next tick,
// replacing any frame not yet shown.
func (p *BoothPresenter) OnResult(res detect.Result, text string) {
	if p == nil {
		return
	}
	if p.Enabled != nil && !p.Enabled() {
		return
	}
	p.Model.Record(res.FaceCount, res.Duration)
	out := images.DrawOverlay(res.Frame, text)
	if out == nil {
		return
	}
	p.mu.Lock()
	p.rendered = out
	p.mu.Unlock()
	if p.logger != nil {
		p.logger.Debug("frame processed", "sequence", res.Sequence, "faces", res.FaceCount, "overlay", text, "latency", res.Duration)
	}
}

// Reset drops any frame waiting to be shown.
func (p *BoothPresenter) Reset() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.rendered = nil
	p.mu.Unlock()
	p.Model.Reset()
}
