package booth

import "time"

// TimerHandle cancels a scheduled callback. Stop is idempotent.
type TimerHandle interface {
	Stop()
}

// Scheduler runs callbacks after a delay or at a fixed interval. Callbacks
// must run one at a time on the goroutine that owns the Machine, in the order
// they fall due, and a stopped handle must never run again.
type Scheduler interface {
	After(d time.Duration, fn func()) TimerHandle
	Every(d time.Duration, fn func()) TimerHandle
}

// stopTimer stops h if set and returns nil so callers can clear the field.
func stopTimer(h TimerHandle) TimerHandle {
	if h != nil {
		h.Stop()
	}
	return nil
}
