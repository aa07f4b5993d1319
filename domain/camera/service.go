package camera

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const statsLogInterval = 5 * time.Second

// Service runs a grab loop at a fixed frame rate and keeps the freshest
// frame. Use NewService, NewScreenSource or NewSyntheticSource.
type Service struct {
	grab     Grabber
	logger   *slog.Logger
	interval time.Duration

	mu     sync.RWMutex
	region image.Rectangle

	// life guards start/stop; running mirrors it for lock-free readers
	life         sync.Mutex
	running      atomic.Bool
	stop         chan struct{}
	exited       chan struct{}
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewService constructs a stopped source around grab.
func NewService(grab Grabber, opts Options, logger *slog.Logger) *Service {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Region.Empty() {
		opts.Region = DefaultRegion()
	}
	return &Service{
		grab:     grab,
		logger:   logger,
		interval: time.Second / time.Duration(opts.FPS),
		region:   opts.Region,
	}
}

func (s *Service) SetRegion(r image.Rectangle) {
	if r.Empty() {
		return
	}
	s.mu.Lock()
	s.region = r
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Info("camera region", "x", r.Min.X, "y", r.Min.Y, "w", r.Dx(), "h", r.Dy())
	}
}

func (s *Service) Region() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.region
}

func (s *Service) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

// Snapshot returns the latest image or nil before the first grab.
func (s *Service) Snapshot() image.Image {
	snap := s.latest.Load()
	if snap == nil || snap.Image == nil {
		return nil
	}
	return snap.Image
}

func (s *Service) Running() bool { return s.running.Load() }

func (s *Service) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return Stats{
		Captures:       captures,
		Skipped:        s.skipped.Load(),
		AvgCapture:     avg,
		LastCapture:    snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
	}
}

func (s *Service) Start() {
	s.life.Lock()
	defer s.life.Unlock()
	if s.running.Load() {
		return
	}
	s.stop = make(chan struct{})
	s.exited = make(chan struct{})
	s.running.Store(true)
	go s.loop(s.stop, s.exited)
}

// Stop ends the grab loop and waits for it to exit. Idempotent.
func (s *Service) Stop() {
	s.life.Lock()
	if !s.running.Load() {
		s.life.Unlock()
		return
	}
	s.running.Store(false)
	close(s.stop)
	exited := s.exited
	s.life.Unlock()
	<-exited
}

func (s *Service) loop(stop <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()
	for {
		s.grabOnce()
		select {
		case <-stop:
			return
		case <-logTicker.C:
			s.logStats()
		case <-ticker.C:
		}
	}
}

// grabOnce captures a single frame and publishes it.
func (s *Service) grabOnce() {
	start := time.Now()
	img, err := s.grab(s.Region())
	if err != nil || img == nil {
		s.skipped.Add(1)
		if err != nil && !errors.Is(err, ErrNoFrame) && s.logger != nil {
			s.logger.Error("camera grab", "error", err)
		}
		return
	}
	s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
}

func (s *Service) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("camera.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}

var _ Source = (*Service)(nil)
