package booth

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Engine owns a Machine and serializes every input to it (detection
// results, control calls, timer fires) through one event loop goroutine.
// Its exported methods are safe for concurrent use.
type Engine struct {
	machine   *Machine
	logger    *slog.Logger
	events    chan interface{}
	done      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once

	phase   atomic.Int32
	overlay atomic.Pointer[string]
	info    atomic.Pointer[SessionInfo]
}

// events
type (
	evtStart       struct{}
	evtHalt        struct{}
	evtAddListener struct{ l PhaseListener }
	evtDetection   struct {
		res   DetectionResult
		reply chan string
	}
	evtTimer struct{ t *loopTimer }
)

// NewEngine constructs the machine on top of a real-time scheduler and
// starts the event loop. The returned engine is in PhaseIdle.
func NewEngine(timing Timing, messages Messages, surface Surface, cb Callbacks, logger *slog.Logger) *Engine {
	e := &Engine{logger: logger, events: make(chan interface{}, 64), done: make(chan struct{}), exited: make(chan struct{})}
	e.machine = NewMachine(timing, messages, &loopScheduler{engine: e}, surface, cb, logger)
	e.publish()
	go func() {
		defer close(e.exited)
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				if logger != nil {
					logger.Error("booth engine panic", "error", r, "stack", stack)
				}
			}
		}()
		e.loop()
	}()
	return e
}

func (e *Engine) loop() {
	for {
		select {
		case <-e.done:
			e.machine.Halt()
			e.publish()
			return
		case ev := <-e.events:
			e.dispatch(ev)
			e.publish()
		}
	}
}

func (e *Engine) dispatch(ev interface{}) {
	switch ev := ev.(type) {
	case evtStart:
		e.machine.Start()
	case evtHalt:
		e.machine.Halt()
	case evtAddListener:
		e.machine.AddListener(ev.l)
	case evtDetection:
		text := e.machine.HandleDetection(ev.res)
		if ev.reply != nil {
			ev.reply <- text
		}
	case evtTimer:
		// a handle stopped after its fire was queued must stay silent
		if !ev.t.stopped.Load() {
			ev.t.fn()
		}
	}
}

// publish mirrors machine state into atomics for readers on other goroutines.
func (e *Engine) publish() {
	info := e.machine.Info()
	e.phase.Store(int32(info.Phase))
	text := info.Overlay
	e.overlay.Store(&text)
	e.info.Store(&info)
}

// post delivers ev to the loop; it is dropped once the engine is closed.
func (e *Engine) post(ev interface{}) bool {
	select {
	case <-e.done:
		return false
	default:
	}
	select {
	case e.events <- ev:
		return true
	case <-e.done:
		return false
	}
}

// Start (re)initializes the session. Any session in progress is discarded
// together with its timers and playback loop.
func (e *Engine) Start() { e.post(evtStart{}) }

// Halt cancels all session activity and parks the machine in PhaseIdle.
func (e *Engine) Halt() { e.post(evtHalt{}) }

// AddListener registers l; it runs on the engine goroutine.
func (e *Engine) AddListener(l PhaseListener) { e.post(evtAddListener{l: l}) }

// HandleDetection processes res and returns the overlay text to draw on the
// frame res was computed from. After Close it returns the last overlay.
func (e *Engine) HandleDetection(res DetectionResult) string {
	reply := make(chan string, 1)
	if !e.post(evtDetection{res: res, reply: reply}) {
		return e.Overlay()
	}
	select {
	case text := <-reply:
		return text
	case <-e.done:
		return e.Overlay()
	}
}

func (e *Engine) Current() Phase { return Phase(e.phase.Load()) }

func (e *Engine) Overlay() string {
	if p := e.overlay.Load(); p != nil {
		return *p
	}
	return ""
}

func (e *Engine) Info() SessionInfo {
	if p := e.info.Load(); p != nil {
		return *p
	}
	return SessionInfo{}
}

// Close halts the machine, stops the loop and waits for it to exit, so no
// callback runs after Close returns. Idempotent. Must not be called from a
// listener or callback.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { close(e.done) })
	<-e.exited
}

// loopScheduler backs the machine's timers with time.AfterFunc and routes
// every fire through the engine loop.
type loopScheduler struct{ engine *Engine }

type loopTimer struct {
	fn      func()
	mu      sync.Mutex
	timer   *time.Timer
	stopped atomic.Bool
}

func (s *loopScheduler) After(d time.Duration, fn func()) TimerHandle {
	t := &loopTimer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fn = func() {
		t.stopped.Store(true)
		fn()
	}
	t.timer = time.AfterFunc(d, func() { s.engine.post(evtTimer{t: t}) })
	return t
}

func (s *loopScheduler) Every(d time.Duration, fn func()) TimerHandle {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &loopTimer{fn: fn}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		if t.stopped.Load() {
			return
		}
		s.engine.post(evtTimer{t: t})
		t.mu.Lock()
		if !t.stopped.Load() {
			t.timer.Reset(d)
		}
		t.mu.Unlock()
	})
	return t
}

func (t *loopTimer) Stop() {
	if t.stopped.Swap(true) {
		return
	}
	t.mu.Lock()
	t.timer.Stop()
	t.mu.Unlock()
}

// Ensure contract satisfaction
var _ EngineContract = (*Engine)(nil)
