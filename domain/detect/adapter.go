package detect

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/soocke/smile-booth-go/domain/camera"
)

// Adapter feeds camera frames to a Detector on a single worker goroutine.
// Only the newest pending frame is kept; older ones are dropped.
type Adapter struct {
	detector Detector
	opts     Options
	sink     func(Result)
	logger   *slog.Logger

	workCh    chan camera.FrameSnapshot
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu      sync.Mutex
	lastSeq uint64
}

// NewAdapter starts the worker. sink runs on the worker goroutine.
func NewAdapter(d Detector, opts Options, sink func(Result), logger *slog.Logger) *Adapter {
	a := &Adapter{
		detector: d,
		opts:     opts.normalize(),
		sink:     sink,
		logger:   logger,
		workCh:   make(chan camera.FrameSnapshot, 1),
		done:     make(chan struct{}),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

// Submit queues snap for detection. Empty snapshots and sequences already
// submitted are ignored. Returns true when the frame was queued.
func (a *Adapter) Submit(snap camera.FrameSnapshot) bool {
	if snap.Image == nil || snap.Sequence == 0 {
		return false
	}
	a.mu.Lock()
	if snap.Sequence == a.lastSeq {
		a.mu.Unlock()
		return false
	}
	a.lastSeq = snap.Sequence
	a.mu.Unlock()

	select {
	case <-a.done:
		return false
	default:
	}
	select {
	case a.workCh <- snap:
	default:
		select {
		case <-a.workCh:
		default:
		}
		select {
		case a.workCh <- snap:
		default:
		}
	}
	return true
}

func (a *Adapter) run() {
	defer a.wg.Done()
	for {
		select {
		case <-a.done:
			return
		case snap := <-a.workCh:
			a.process(snap)
		}
	}
}

func (a *Adapter) process(snap camera.FrameSnapshot) {
	defer func() {
		if r := recover(); r != nil && a.logger != nil {
			a.logger.Error("detector panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	start := time.Now()
	n, err := a.detector.Detect(snap.Image)
	elapsed := time.Since(start)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("face detection", "error", err, "sequence", snap.Sequence)
		}
		return
	}
	if n < 0 {
		n = 0
	}
	if n > a.opts.MaxFaces {
		n = a.opts.MaxFaces
	}
	if a.sink != nil {
		a.sink(Result{Frame: snap.Image, Sequence: snap.Sequence, FaceCount: n, Duration: elapsed})
	}
}

// Close stops the worker, waits for an in-flight frame and closes the
// detector. Idempotent.
func (a *Adapter) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.done)
		a.wg.Wait()
		err = a.detector.Close()
	})
	return err
}
