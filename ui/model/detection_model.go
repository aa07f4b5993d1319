package model

import (
	"sync"
	"time"
)

// DetectionModel holds the latest detector outcome. Written from the
// detection worker and read on the UI tick. The zero value is usable.
type DetectionModel struct {
	mu        sync.Mutex
	faces     int
	latency   time.Duration
	processed uint64
}

func NewDetectionModel() *DetectionModel { return &DetectionModel{} }

// Record stores one processed frame.
func (m *DetectionModel) Record(faces int, latency time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.faces = faces
	m.latency = latency
	m.processed++
	m.mu.Unlock()
}

// Latest returns the last face count, its detector latency and the number of frames processed.
func (m *DetectionModel) Latest() (faces int, latency time.Duration, processed uint64) {
	if m == nil {
		return 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.faces, m.latency, m.processed
}

// Reset clears the detector outcome.
func (m *DetectionModel) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.faces, m.latency = 0, 0
	m.mu.Unlock()
}
