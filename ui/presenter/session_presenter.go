package presenter

import (
	"time"

	"github.com/soocke/smile-booth-go/ui/model"
)

// RunningEnabledModel reports whether the booth is running.
type RunningEnabledModel interface{ Enabled() bool }

// SessionView displays run durations and photo session counters.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetCounts(started, completed int)
	SetDetection(faces int, latency time.Duration)
}

// SessionPresenter formats session statistics from the models to the view.
type SessionPresenter struct {
	sess    *model.SessionModel
	detect  *model.DetectionModel
	running RunningEnabledModel
	view    SessionView
}

func NewSessionPresenter(sess *model.SessionModel, detect *model.DetectionModel, running RunningEnabledModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, detect: detect, running: running, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.running == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.running.Enabled(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	started, completed, _ := p.sess.Counts()
	p.view.SetCounts(started, completed)
	if p.detect != nil {
		faces, latency, _ := p.detect.Latest()
		p.view.SetDetection(faces, latency)
	}
}
