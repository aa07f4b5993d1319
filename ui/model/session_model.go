package model

import (
	"sync"
	"time"

	"github.com/soocke/smile-booth-go/domain/booth"
)

// SessionModel tracks running time and photo session counters.
// Durations advance from OnTick; counters advance from OnPhase, which runs
// on the engine goroutine. The zero value is ready to use.
type SessionModel struct {
	mu sync.Mutex

	active              bool
	runStart            time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration

	started   int
	completed int
	lastShots int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the running durations from the current booth state.
func (m *SessionModel) OnTick(running bool, now time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if running {
		if !m.active {
			m.active = true
			m.runStart = now
			m.lastSessionDuration = 0
		}
		m.lastSessionDuration = now.Sub(m.runStart)
	} else if m.active {
		m.lastSessionDuration = now.Sub(m.runStart)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// OnPhase counts photo sessions: one starts with each countdown and
// completes when cool-down returns the booth to idle.
func (m *SessionModel) OnPhase(prev, next booth.Phase) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case next == booth.PhaseCountingDown:
		m.started++
	case prev == booth.PhaseCoolingDown && next == booth.PhaseIdle:
		m.completed++
	}
}

// OnCapture records the shot number of the latest capture.
func (m *SessionModel) OnCapture(shot int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.lastShots = shot
	m.mu.Unlock()
}

// Values returns the current run duration and the total accumulated duration.
// The total includes the ongoing run when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Counts returns started and completed photo sessions and the last shot number.
func (m *SessionModel) Counts() (started, completed, shots int) {
	if m == nil {
		return 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started, m.completed, m.lastShots
}
