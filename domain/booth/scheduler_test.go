package booth

import (
	"log/slog"
	"sort"
	"testing"
	"time"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// manualScheduler runs timers against virtual time. Advance fires every
// timer falling due within the window, including timers scheduled by
// callbacks during the advance, in due-time then scheduling order. A
// zero-delay timer scheduled at the last instant of an advance waits for the
// next one, so state between two scheduler turns stays observable.
type manualScheduler struct {
	now      time.Duration
	seq      int
	advances int
	timers   []*manualTimer
}

type manualTimer struct {
	s        *manualScheduler
	due      time.Duration
	interval time.Duration
	seq      int
	fn       func()
	stopped  bool
	// zero-delay timers scheduled during an advance, tagged with it
	advance int
}

func (s *manualScheduler) After(d time.Duration, fn func()) TimerHandle {
	return s.add(d, 0, fn)
}

func (s *manualScheduler) Every(d time.Duration, fn func()) TimerHandle {
	return s.add(d, d, fn)
}

func (s *manualScheduler) add(d, interval time.Duration, fn func()) *manualTimer {
	s.seq++
	t := &manualTimer{s: s, due: s.now + d, interval: interval, seq: s.seq, fn: fn}
	if d == 0 {
		t.advance = s.advances
	}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() { t.stopped = true }

// Pending counts timers that have not been stopped or spent.
func (s *manualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.advances++
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			s.seq++
			t.due += t.interval
			t.seq = s.seq
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
}

func (s *manualScheduler) nextDue(target time.Duration) *manualTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due != s.timers[j].due {
			return s.timers[i].due < s.timers[j].due
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	for _, t := range s.timers {
		if t.due > target {
			return nil
		}
		if t.advance == s.advances && t.due == target {
			continue
		}
		return t
	}
	return nil
}

func TestManualScheduler_OrderAndStop(t *testing.T) {
	s := &manualScheduler{}
	var got []string
	s.After(2*time.Second, func() { got = append(got, "after") })
	h := s.Every(time.Second, func() { got = append(got, "tick") })
	s.Advance(2 * time.Second)
	h.Stop()
	s.Advance(5 * time.Second)
	want := []string{"tick", "after", "tick"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", s.Pending())
	}
}
