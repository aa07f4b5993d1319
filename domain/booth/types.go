package booth

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// Phase enumerates the states of one booth session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountingDown
	PhaseCapturing
	PhaseReviewing
	PhaseCoolingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountingDown:
		return "counting_down"
	case PhaseCapturing:
		return "capturing"
	case PhaseReviewing:
		return "reviewing"
	case PhaseCoolingDown:
		return "cooling_down"
	default:
		return "unknown"
	}
}

// FrameCapacity is the number of frames captured per session.
const FrameCapacity = 3

// DetectionResult is the per-video-frame output of the face detector.
type DetectionResult struct {
	FaceCount int
}

// CapturedFrame is an immutable snapshot of the display surface.
// Image must not be mutated after the frame is created.
type CapturedFrame struct {
	Shot       int
	Image      image.Image
	CapturedAt time.Time
}

// Surface yields the image currently shown on the display surface.
// A nil image means nothing has been drawn yet.
type Surface interface {
	Snapshot() image.Image
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func() image.Image

func (f SurfaceFunc) Snapshot() image.Image { return f() }

// PhaseListener is called on each phase transition.
type PhaseListener func(prev, next Phase)

// Callbacks externalize the side effects of the machine (overlay text,
// playback display, error reporting). Every field is optional.
type Callbacks struct {
	OnOverlay       func(text string)
	OnPlaybackFrame func(frame CapturedFrame)
	OnCapture       func(frame CapturedFrame)
	OnError         func(err error)
}

// Messages are the overlay texts shown outside the countdown.
type Messages struct {
	NoFace         string
	LookingForFace string
}

// Timing holds the per-phase pacing of the machine.
type Timing struct {
	CountdownStep     time.Duration
	CaptureInterval   time.Duration
	PlaybackInterval  time.Duration
	Cooldown          time.Duration
	ReviewHold        time.Duration
	CountdownMessages []string
}

// DefaultTiming returns the pacing of the classic booth: a "2, 1, Go!"
// countdown at one second per step, shots half a second apart, playback at
// 0.2s per frame and one second of cool-down.
func DefaultTiming() Timing {
	return Timing{
		CountdownStep:     time.Second,
		CaptureInterval:   500 * time.Millisecond,
		PlaybackInterval:  200 * time.Millisecond,
		Cooldown:          time.Second,
		CountdownMessages: []string{"2", "1", "Go!"},
	}
}

// DefaultMessages returns the stock overlay texts.
func DefaultMessages() Messages {
	return Messages{NoFace: "No face detected", LookingForFace: "Looking for face..."}
}

// SessionInfo is a read-only view of the current session.
type SessionInfo struct {
	ID            uuid.UUID
	StartedAt     time.Time
	Phase         Phase
	Overlay       string
	FrameCount    int
	PlaybackLoops int
}

// Interface slices for consumers (presenters, CLI).
type PhaseSource interface{ Current() Phase }
type DetectionSink interface {
	HandleDetection(DetectionResult) string
}
type SessionControl interface {
	Start()
	Halt()
}

// EngineContract aggregate for DI.
type EngineContract interface {
	PhaseSource
	DetectionSink
	SessionControl
	Overlay() string
	Info() SessionInfo
	AddListener(PhaseListener)
	Close()
}
