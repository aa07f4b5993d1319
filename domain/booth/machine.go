package booth

import (
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Session is the single active run of the booth. It is replaced, never
// reset field by field, when a new run starts.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time
	phase     Phase
	frames    *FrameBuffer
	overlay   string
}

func newSession(now time.Time, overlay string) *Session {
	return &Session{ID: uuid.New(), StartedAt: now, phase: PhaseIdle, frames: NewFrameBuffer(FrameCapacity), overlay: overlay}
}

// Machine sequences a session through its phases. It is not safe for
// concurrent use: detection results, Start/Halt and timer callbacks must all
// be delivered from the scheduler's goroutine (see Engine).
type Machine struct {
	timing    Timing
	messages  Messages
	sched     Scheduler
	surface   Surface
	cb        Callbacks
	logger    *slog.Logger
	now       func() time.Time
	player    *Player
	session   *Session
	listeners []PhaseListener

	// timers owned by the current session
	countdown TimerHandle
	capture   TimerHandle
	review    TimerHandle
	cooldown  TimerHandle
	playback  *Playback

	countdownIdx int
	shots        int
}

// NewMachine returns a machine in PhaseIdle with an initial session.
func NewMachine(timing Timing, messages Messages, sched Scheduler, surface Surface, cb Callbacks, logger *slog.Logger) *Machine {
	if len(timing.CountdownMessages) == 0 {
		timing.CountdownMessages = DefaultTiming().CountdownMessages
	}
	m := &Machine{timing: timing, messages: messages, sched: sched, surface: surface, cb: cb, logger: logger, now: time.Now}
	m.player = NewPlayer(sched, timing.PlaybackInterval, m.showPlayback, logger)
	m.session = newSession(m.now(), messages.NoFace)
	return m
}

// AddListener registers l for phase transitions.
func (m *Machine) AddListener(l PhaseListener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

// Start cancels everything the previous session scheduled, including its
// playback loop, and replaces it with a fresh session in PhaseIdle.
func (m *Machine) Start() {
	prev := m.session.phase
	m.cancelAll()
	m.stopPlayback()
	m.session = newSession(m.now(), m.messages.NoFace)
	if m.logger != nil {
		m.logger.Info("session started", "session", m.session.ID.String())
	}
	m.emitOverlay()
	if prev != PhaseIdle {
		m.notify(prev, PhaseIdle)
	}
}

// Halt stops all timers and playback and parks the machine in PhaseIdle.
func (m *Machine) Halt() {
	prev := m.session.phase
	m.cancelAll()
	m.stopPlayback()
	m.session.frames.Clear()
	m.session.phase = PhaseIdle
	m.setOverlay("")
	if prev != PhaseIdle {
		m.notify(prev, PhaseIdle)
	}
}

// HandleDetection processes one detection result and returns the overlay
// text to render with the frame it came from. Only PhaseIdle reacts.
func (m *Machine) HandleDetection(res DetectionResult) string {
	if m.session.phase != PhaseIdle {
		return m.session.overlay
	}
	if res.FaceCount <= 0 {
		m.setOverlay(m.messages.NoFace)
		return m.session.overlay
	}
	m.enterCountingDown()
	return m.session.overlay
}

func (m *Machine) Phase() Phase            { return m.session.phase }
func (m *Machine) Overlay() string         { return m.session.overlay }
func (m *Machine) Frames() []CapturedFrame { return m.session.frames.Snapshot() }

// Playback returns the handle of the most recent playback loop, if any.
func (m *Machine) Playback() *Playback { return m.playback }

// Info returns a copy of the session state.
func (m *Machine) Info() SessionInfo {
	return SessionInfo{
		ID:            m.session.ID,
		StartedAt:     m.session.StartedAt,
		Phase:         m.session.phase,
		Overlay:       m.session.overlay,
		FrameCount:    m.session.frames.Len(),
		PlaybackLoops: m.player.Live(),
	}
}

func (m *Machine) enterCountingDown() {
	m.countdown = stopTimer(m.countdown)
	m.transition(PhaseCountingDown)
	m.countdownIdx = 0
	m.showCountdown()
	m.countdown = m.sched.Every(m.timing.CountdownStep, m.countdownTick)
}

func (m *Machine) countdownTick() {
	if m.session.phase != PhaseCountingDown {
		return
	}
	m.countdownIdx++
	if m.countdownIdx < len(m.timing.CountdownMessages) {
		m.showCountdown()
		return
	}
	m.countdown = stopTimer(m.countdown)
	m.setOverlay("")
	m.enterCapturing()
}

func (m *Machine) showCountdown() {
	text := m.timing.CountdownMessages[m.countdownIdx]
	m.setOverlay(text)
	if m.logger != nil {
		m.logger.Info("countdown", "text", text, "session", m.session.ID.String())
	}
}

func (m *Machine) enterCapturing() {
	// a loop left over from the last review would keep cycling stale frames
	m.stopPlayback()
	m.capture = stopTimer(m.capture)
	m.session.frames.Clear()
	m.shots = 0
	m.transition(PhaseCapturing)
	m.capture = m.sched.Every(m.timing.CaptureInterval, m.captureTick)
}

func (m *Machine) captureTick() {
	if m.session.phase != PhaseCapturing {
		return
	}
	img := m.grab()
	if img == nil {
		if m.logger != nil {
			m.logger.Warn("capture skipped, surface empty", "session", m.session.ID.String())
		}
		return
	}
	m.shots++
	frame := CapturedFrame{Shot: m.shots, Image: img, CapturedAt: m.now()}
	if err := m.session.frames.Append(frame); err != nil {
		if m.logger != nil {
			m.logger.Error("capture invariant violated", "error", err, "session", m.session.ID.String())
		}
		m.report(err)
		m.capture = stopTimer(m.capture)
		m.enterReviewing()
		return
	}
	if m.logger != nil {
		m.logger.Info("captured photo", "shot", m.shots, "session", m.session.ID.String())
	}
	if m.cb.OnCapture != nil {
		m.cb.OnCapture(frame)
	}
	if m.session.frames.Full() {
		m.capture = stopTimer(m.capture)
		m.enterReviewing()
	}
}

func (m *Machine) grab() image.Image {
	if m.surface == nil {
		return nil
	}
	return m.surface.Snapshot()
}

func (m *Machine) enterReviewing() {
	m.transition(PhaseReviewing)
	frames := m.session.frames.Snapshot()
	if len(frames) < FrameCapacity {
		if m.logger != nil {
			m.logger.Warn("playback skipped", "frames", len(frames), "session", m.session.ID.String())
		}
		m.report(ErrInsufficientFrames)
		m.enterCoolingDown()
		return
	}
	m.stopPlayback()
	m.playback = m.player.Start(frames)
	m.review = stopTimer(m.review)
	m.review = m.sched.After(m.timing.ReviewHold, func() {
		m.review = nil
		if m.session.phase == PhaseReviewing {
			m.enterCoolingDown()
		}
	})
}

func (m *Machine) enterCoolingDown() {
	m.cooldown = stopTimer(m.cooldown)
	m.transition(PhaseCoolingDown)
	m.setOverlay(m.messages.LookingForFace)
	m.cooldown = m.sched.After(m.timing.Cooldown, func() {
		m.cooldown = nil
		if m.session.phase != PhaseCoolingDown {
			return
		}
		m.setOverlay("")
		m.session.frames.Clear()
		m.transition(PhaseIdle)
	})
}

func (m *Machine) cancelAll() {
	m.countdown = stopTimer(m.countdown)
	m.capture = stopTimer(m.capture)
	m.review = stopTimer(m.review)
	m.cooldown = stopTimer(m.cooldown)
}

func (m *Machine) stopPlayback() {
	m.player.Stop(m.playback)
	m.playback = nil
}

func (m *Machine) showPlayback(frame CapturedFrame) {
	if m.cb.OnPlaybackFrame != nil {
		m.cb.OnPlaybackFrame(frame)
	}
}

func (m *Machine) transition(next Phase) {
	prev := m.session.phase
	if prev == next {
		return
	}
	m.session.phase = next
	if m.logger != nil {
		m.logger.Debug("booth phase transition", "from", prev.String(), "to", next.String(), "session", m.session.ID.String())
	}
	m.notify(prev, next)
}

func (m *Machine) notify(prev, next Phase) {
	for _, l := range m.listeners {
		l(prev, next)
	}
}

func (m *Machine) setOverlay(text string) {
	if m.session.overlay == text {
		return
	}
	m.session.overlay = text
	m.emitOverlay()
}

func (m *Machine) emitOverlay() {
	if m.cb.OnOverlay != nil {
		m.cb.OnOverlay(m.session.overlay)
	}
}

func (m *Machine) report(err error) {
	if m.cb.OnError != nil {
		m.cb.OnError(err)
	}
}
