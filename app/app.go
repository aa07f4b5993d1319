package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/debug"
	"github.com/soocke/smile-booth-go/ui/presenter"
	"github.com/soocke/smile-booth-go/ui/theme"
)

const tick = 33 * time.Millisecond

type app struct {
	*AppContainer
	ctx     context.Context
	cancel  context.CancelFunc
	afterID string
}

// NewApp builds the container and the main window.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) (*app, error) {
	if Error != nil {
		return nil, fmt.Errorf("tk: %w", Error)
	}
	c, err := BuildContainer(cfg, cfgPath, logger)
	if err != nil {
		return nil, err
	}
	a := &app{AppContainer: c}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.Camera.Width+cfg.Playback.Width+80, cfg.Camera.Height+520))
	return a, nil
}

// Start builds the widgets, starts the update loop and blocks until the window closes.
func (a *app) Start() {
	theme.InitStyles()
	a.RootView.Build(a.ControlPresenter.Start, a.ControlPresenter.Stop, a.exitHandler, a.onRegion)
	a.Loop = presenter.NewLoop(a.SessionPresenter, a.PhasePresenter, a.BoothPresenter, a.PlaybackPresenter, a.scheduleUpdate)

	if a.Config.Debug {
		debug.StartGoroutineLogger(a.ctx, 5*time.Second, a.Logger,
			debug.Gauge{Name: "playback_loops", Read: func() int64 { return int64(a.Pipeline.Engine.Info().PlaybackLoops) }},
			debug.Gauge{Name: "camera_sequence", Read: func() int64 { return int64(a.Pipeline.Camera.Stats().Sequence) }},
		)
		debug.StartMemLogger(a.ctx, 5*time.Second, a.Logger)
	}

	a.scheduleUpdate()
	App.Wait()
	a.shutdown()
}

func (a *app) onRegion(r image.Rectangle) {
	a.Pipeline.Camera.SetRegion(r)
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps every widget update on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.Loop.Tick() })
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	Destroy(App)
}

func (a *app) shutdown() {
	a.cancel()
	if err := a.Pipeline.Close(); err != nil && a.Logger != nil {
		a.Logger.Error("pipeline close", "error", err)
	}
}
