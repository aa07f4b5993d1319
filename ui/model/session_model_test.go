package model

import (
	"testing"
	"time"

	"github.com/soocke/smile-booth-go/domain/booth"
)

func TestSessionModel_BasicLifecycle(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	// Start at t0 and run for 5s.
	m.OnTick(true, base)
	// Advance 5s.
	m.OnTick(true, base.Add(5*time.Second))
	session, total := m.Values()
	if session < 5*time.Second || total < 5*time.Second {
		t.Fatalf("expected ~5s session & total; got session=%v total=%v", session, total)
	}

	// Stop at 5s.
	m.OnTick(false, base.Add(5*time.Second))
	session, total = m.Values()
	if session < 5*time.Second || total < 5*time.Second {
		t.Fatalf("after stop expected persisted 5s; got session=%v total=%v", session, total)
	}

	// Idle 2s (no change expected).
	m.OnTick(false, base.Add(7*time.Second))
	session2, total2 := m.Values()
	if session2 != session || total2 != total {
		t.Fatalf("idle tick should not change durations: before session=%v total=%v after session=%v total=%v", session, total, session2, total2)
	}

	// Second session at 10s lasting 3s.
	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	s3, t3 := m.Values()
	if s3 < 3*time.Second {
		t.Fatalf("second session expected >=3s, got %v", s3)
	}
	if t3 < 8*time.Second { // 5 + 3 ongoing
		t.Fatalf("total should include previous 5s + current >=3s (>=8s); got %v", t3)
	}

	// stop second session finalizing totals (13s)
	m.OnTick(false, base.Add(13*time.Second))
	sFinal, tFinal := m.Values()
	if sFinal < 3*time.Second || tFinal < 8*time.Second {
		t.Fatalf("final expected session >=3s total >=8s got session=%v total=%v", sFinal, tFinal)
	}
}

func TestSessionModel_CountsPhotoSessions(t *testing.T) {
	m := NewSessionModel()
	cycle := []booth.Phase{booth.PhaseIdle, booth.PhaseCountingDown, booth.PhaseCapturing, booth.PhaseReviewing, booth.PhaseCoolingDown, booth.PhaseIdle}
	for i := 1; i < len(cycle); i++ {
		m.OnPhase(cycle[i-1], cycle[i])
	}
	// a reset mid-capture starts nothing and completes nothing
	m.OnPhase(booth.PhaseCountingDown, booth.PhaseIdle)
	m.OnCapture(3)
	started, completed, shots := m.Counts()
	if started != 1 || completed != 1 || shots != 3 {
		t.Fatalf("unexpected counts started=%d completed=%d shots=%d", started, completed, shots)
	}
}

func TestDetectionModel_Record(t *testing.T) {
	m := NewDetectionModel()
	m.Record(1, 12*time.Millisecond)
	m.Record(0, 8*time.Millisecond)
	faces, latency, n := m.Latest()
	if faces != 0 || latency != 8*time.Millisecond || n != 2 {
		t.Fatalf("unexpected detection state faces=%d latency=%v n=%d", faces, latency, n)
	}
	m.Reset()
	if faces, _, n = m.Latest(); faces != 0 || n != 2 {
		t.Fatalf("reset must keep the processed counter")
	}
	var nilModel *DetectionModel
	nilModel.Record(1, 0)
}
