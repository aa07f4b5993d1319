package presenter

import (
	"sync"
	"time"

	"github.com/soocke/smile-booth-go/domain/booth"
)

// StateView sets the phase label in the view.
type StateView interface{ SetStateLabel(string) }

// PhasePresenter receives phase transitions from the engine goroutine and
// reflects the latest one on the UI tick.
type PhasePresenter struct {
	view    StateView
	mu      sync.Mutex
	latest  booth.Phase
	pending []booth.Phase
	shown   bool
}

func NewPhasePresenter(view StateView) *PhasePresenter {
	return &PhasePresenter{view: view}
}

// OnPhase queues a transitioned phase from the engine listener.
func (p *PhasePresenter) OnPhase(_, next booth.Phase) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, next)
	p.mu.Unlock()
}

// Tick reflects the most recent queued phase and clears the queue.
func (p *PhasePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	if len(p.pending) == 0 {
		p.mu.Unlock()
		if !p.shown {
			p.shown = true
			p.view.SetStateLabel("Phase: " + p.latest.String())
		}
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	p.mu.Unlock()
	if last != p.latest || !p.shown {
		p.latest = last
		p.shown = true
		p.view.SetStateLabel("Phase: " + last.String())
	}
}
