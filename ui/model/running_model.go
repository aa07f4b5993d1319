package model

import (
	"sync/atomic"
)

// RunningModel tracks whether the booth session is running. The zero value is stopped and usable.
// Concurrency-safe via atomic Bool because UI callbacks and presenter ticks may race.
type RunningModel struct{ running atomic.Bool }

func (m *RunningModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.running.Load()
}

func (m *RunningModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.running.Store(b)
}
