package app

import (
	"log/slog"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/domain/booth"
	"github.com/soocke/smile-booth-go/pipeline"
	"github.com/soocke/smile-booth-go/ui/model"
	"github.com/soocke/smile-booth-go/ui/presenter"
	"github.com/soocke/smile-booth-go/ui/view"
)

// AppContainer assembles models, the booth pipeline, presenters and the root view.
type AppContainer struct {
	Config    *config.Config
	CfgPath   string
	Logger    *slog.Logger
	Running   *model.RunningModel
	Session   *model.SessionModel
	Detection *model.DetectionModel
	Pipeline  *pipeline.Pipeline
	RootView  *view.RootView
	UI        view.UI

	// Presenters
	SessionPresenter  *presenter.SessionPresenter
	PhasePresenter    *presenter.PhasePresenter
	BoothPresenter    *presenter.BoothPresenter
	PlaybackPresenter *presenter.PlaybackPresenter
	ControlPresenter  *presenter.ControlPresenter
	Loop              *presenter.Loop
}

// BuildContainer constructs all components. Widgets are created later by
// RootView.Build; presenters only keep the view reference until then.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}
	c.Running = &model.RunningModel{}
	c.Session = model.NewSessionModel()
	c.Detection = model.NewDetectionModel()
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.PhasePresenter = presenter.NewPhasePresenter(c.UI)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Detection, c.Running, c.UI)
	c.PlaybackPresenter = presenter.NewPlaybackPresenter(c.UI, cfg.Playback.Width, cfg.Playback.Height, cfg.Messages.InsufficientFrames)
	c.BoothPresenter = presenter.NewBoothPresenter(c.Running.Enabled, c.UI, c.Detection, logger)

	p, err := pipeline.New(cfg, logger, pipeline.Hooks{
		Callbacks: booth.Callbacks{
			OnPlaybackFrame: c.PlaybackPresenter.OnPlaybackFrame,
			OnCapture:       func(f booth.CapturedFrame) { c.Session.OnCapture(f.Shot) },
			OnError:         c.PlaybackPresenter.OnError,
		},
		OnPhase: func(prev, next booth.Phase) {
			c.PhasePresenter.OnPhase(prev, next)
			c.Session.OnPhase(prev, next)
		},
		OnResult: c.BoothPresenter.OnResult,
	})
	if err != nil {
		return nil, err
	}
	c.Pipeline = p
	c.BoothPresenter.Bind(p.Camera, p.Adapter)
	c.ControlPresenter = presenter.NewControlPresenter(c.Running, p, c.UI, c.BoothPresenter, c.PlaybackPresenter)
	return c, nil
}
