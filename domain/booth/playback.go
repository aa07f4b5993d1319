package booth

import (
	"log/slog"
	"time"
)

// Player starts playback loops that cycle captured frames for preview.
// Like the Machine it must only be used from the scheduler's goroutine.
type Player struct {
	sched    Scheduler
	interval time.Duration
	show     func(CapturedFrame)
	logger   *slog.Logger
	live     map[*Playback]struct{}
	nextID   int
}

// Playback is the handle of one running loop.
type Playback struct {
	id     int
	frames []CapturedFrame
	next   int
	timer  TimerHandle
	owner  *Player
}

// NewPlayer returns a player advancing frames every interval and handing
// each one to show.
func NewPlayer(sched Scheduler, interval time.Duration, show func(CapturedFrame), logger *slog.Logger) *Player {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &Player{sched: sched, interval: interval, show: show, logger: logger, live: make(map[*Playback]struct{})}
}

// Start begins cycling frames in insertion order, wrapping after the last
// one, until the returned handle is stopped. The first frame is shown on the
// first tick. An empty sequence yields a stopped handle.
func (p *Player) Start(frames []CapturedFrame) *Playback {
	p.nextID++
	pb := &Playback{id: p.nextID, frames: frames, owner: p}
	if len(frames) == 0 {
		return pb
	}
	pb.timer = p.sched.Every(p.interval, pb.advance)
	p.live[pb] = struct{}{}
	if p.logger != nil {
		p.logger.Debug("playback started", "loop", pb.id, "frames", len(frames))
	}
	return pb
}

// Stop halts pb. Nil and already stopped handles are ignored.
func (p *Player) Stop(pb *Playback) {
	if pb == nil {
		return
	}
	pb.Stop()
}

// Live reports how many loops are still running.
func (p *Player) Live() int { return len(p.live) }

func (pb *Playback) advance() {
	if pb.timer == nil {
		return
	}
	frame := pb.frames[pb.next]
	pb.next = (pb.next + 1) % len(pb.frames)
	if pb.owner.show != nil {
		pb.owner.show(frame)
	}
}

// Stop cancels the loop's timer.
func (pb *Playback) Stop() {
	if pb == nil || pb.timer == nil {
		return
	}
	pb.timer = stopTimer(pb.timer)
	delete(pb.owner.live, pb)
	if pb.owner.logger != nil {
		pb.owner.logger.Debug("playback stopped", "loop", pb.id)
	}
}

// Running reports whether the loop still has a live timer.
func (pb *Playback) Running() bool { return pb != nil && pb.timer != nil }

// Frames returns the sequence being played.
func (pb *Playback) Frames() []CapturedFrame {
	if pb == nil {
		return nil
	}
	return pb.frames
}
