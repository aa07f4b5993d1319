package detect

import (
	"image"
	"sync"
)

// ScriptedDetector replays a fixed sequence of face counts, one per call.
// Once exhausted the last value repeats; an empty script always reports 0.
type ScriptedDetector struct {
	mu     sync.Mutex
	script []int
	pos    int
}

func NewScriptedDetector(script []int) *ScriptedDetector {
	return &ScriptedDetector{script: append([]int(nil), script...)}
}

func (d *ScriptedDetector) Detect(image.Image) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.script) == 0 {
		return 0, nil
	}
	n := d.script[d.pos]
	if d.pos < len(d.script)-1 {
		d.pos++
	}
	return n, nil
}

func (d *ScriptedDetector) Close() error { return nil }

var _ Detector = (*ScriptedDetector)(nil)
