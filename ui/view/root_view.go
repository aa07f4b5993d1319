package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     BoothPreview
	Region      RegionPicker

	StateLabel *TLabelWidget
}

// UI is the subset of view operations presenters drive.
type UI interface {
	SetStateLabel(text string)
	SetConfigEditable(enabled bool)
	UpdateLive(img image.Image)
	UpdatePlayback(img image.Image)
	SetPlaybackText(text string)
	SetSession(session, total time.Duration)
	SetCounts(started, completed int)
	SetDetection(faces int, latency time.Duration)
	PreviewReset()
	ConfigEditable(bool)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions;
// onRegion receives a confirmed camera region.
func (rv *RootView) Build(onStart, onStop, onExit func(), onRegion func(image.Rectangle)) {
	if rv == nil {
		return
	}
	// Row 0-1: stats, phase label, buttons
	rv.Session = NewSessionStats(0, 0)
	rv.StateLabel = TLabel(Txt("Phase: idle"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	rv.Region = NewRegionPicker(rv.cfg, rv.cfgPath, rv.logger, onRegion)
	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	buttons := []struct {
		text  string
		style string
		fn    func()
	}{
		{"Start Session", theme.StylePrimaryButton, onStart},
		{"Stop", theme.StyleDangerButton, onStop},
		{"Camera Region", theme.StylePrimaryButton, rv.Region.OpenOrFocus},
		{"Exit", theme.StyleDangerButton, onExit},
	}
	for i, b := range buttons {
		btn := TButton(Txt(b.text), Style(b.style), Command(b.fn))
		Grid(btn, In(btnFrame), Row(i), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	rv.Preview = NewBoothPreview(2, rv.cfg.Camera.Width, rv.cfg.Camera.Height, rv.cfg.Playback.Width, rv.cfg.Playback.Height)

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.ConfigPanel.Build(4)
}

func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

func (rv *RootView) UpdateLive(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateLive(img)
	}
}

func (rv *RootView) UpdatePlayback(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePlayback(img)
	}
}

func (rv *RootView) SetPlaybackText(text string) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.SetPlaybackText(text)
	}
}

// SetSession updates both running and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

func (rv *RootView) SetCounts(started, completed int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounts(started, completed)
	}
}

func (rv *RootView) SetDetection(faces int, latency time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetDetection(faces, latency)
	}
}

// PreviewReset clears both preview images.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}

// ConfigEditable redirects to SetConfigEditable to satisfy ControlView.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }

var _ UI = (*RootView)(nil)
