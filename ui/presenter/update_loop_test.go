package presenter

import "testing"

func TestLoop_NilSafeAndReschedules(t *testing.T) {
	var nilLoop *Loop
	nilLoop.Tick()

	calls := 0
	l := NewLoop(nil, nil, nil, nil, func() { calls++ })
	l.Tick()
	l.Tick()
	if calls != 2 {
		t.Fatalf("expected 2 schedule calls, got %d", calls)
	}
}
