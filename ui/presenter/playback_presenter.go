package presenter

import (
	"errors"
	"image"
	"sync"

	"github.com/soocke/smile-booth-go/domain/booth"
	"github.com/soocke/smile-booth-go/ui/images"
)

// PlaybackView shows the looping review sequence or a status text in its place.
type PlaybackView interface {
	UpdatePlayback(img image.Image)
	SetPlaybackText(text string)
}

// PlaybackPresenter forwards playback frames from the engine goroutine to
// the view on the UI tick.
type PlaybackPresenter struct {
	view         PlaybackView
	width        int
	height       int
	insufficient string

	mu      sync.Mutex
	frame   image.Image
	message string
	dirty   bool
}

func NewPlaybackPresenter(view PlaybackView, width, height int, insufficient string) *PlaybackPresenter {
	return &PlaybackPresenter{view: view, width: width, height: height, insufficient: insufficient}
}

// OnPlaybackFrame queues f for display; only the newest frame is kept.
func (p *PlaybackPresenter) OnPlaybackFrame(f booth.CapturedFrame) {
	if p == nil || f.Image == nil {
		return
	}
	p.mu.Lock()
	p.frame, p.message, p.dirty = f.Image, "", true
	p.mu.Unlock()
}

// OnError shows the insufficient frames text instead of a review loop.
func (p *PlaybackPresenter) OnError(err error) {
	if p == nil || !errors.Is(err, booth.ErrInsufficientFrames) {
		return
	}
	p.mu.Lock()
	p.frame, p.message, p.dirty = nil, p.insufficient, true
	p.mu.Unlock()
}

// Reset drops a frame or text still waiting for the next tick.
func (p *PlaybackPresenter) Reset() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.frame, p.message, p.dirty = nil, "", false
	p.mu.Unlock()
}

func (p *PlaybackPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	frame, message, dirty := p.frame, p.message, p.dirty
	p.dirty = false
	p.mu.Unlock()
	if !dirty {
		return
	}
	if frame == nil {
		p.view.SetPlaybackText(message)
		return
	}
	p.view.UpdatePlayback(images.ScaleToFit(frame, p.width, p.height))
}
