package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Phase    *PhasePresenter
	Booth    *BoothPresenter
	Playback *PlaybackPresenter
	Schedule func()
}

func NewLoop(sess *SessionPresenter, phase *PhasePresenter, booth *BoothPresenter, playback *PlaybackPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Phase: phase, Booth: booth, Playback: playback, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Phase != nil {
		l.Phase.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Booth != nil {
		l.Booth.ProcessFrame()
	}
	if l.Playback != nil {
		l.Playback.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
