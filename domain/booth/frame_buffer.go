package booth

import "fmt"

// FrameBuffer is the ordered, bounded set of frames captured in one session.
// The zero value is not usable; construct with NewFrameBuffer.
type FrameBuffer struct {
	frames   []CapturedFrame
	capacity int
}

// NewFrameBuffer returns an empty buffer holding at most capacity frames.
func NewFrameBuffer(capacity int) *FrameBuffer {
	if capacity < 1 {
		capacity = FrameCapacity
	}
	return &FrameBuffer{frames: make([]CapturedFrame, 0, capacity), capacity: capacity}
}

// Append adds frame at the end. It fails with ErrCapacityExceeded when full.
func (b *FrameBuffer) Append(frame CapturedFrame) error {
	if len(b.frames) >= b.capacity {
		return fmt.Errorf("append shot %d: %w", frame.Shot, ErrCapacityExceeded)
	}
	b.frames = append(b.frames, frame)
	return nil
}

// Clear discards all frames. Snapshots taken earlier are unaffected.
func (b *FrameBuffer) Clear() {
	// fresh backing array so handed-out snapshots never alias new appends
	b.frames = make([]CapturedFrame, 0, b.capacity)
}

// Snapshot returns the frames in insertion order. The slice is a new header
// over the current frames; image payloads are shared, not copied.
func (b *FrameBuffer) Snapshot() []CapturedFrame {
	out := make([]CapturedFrame, len(b.frames))
	copy(out, b.frames)
	return out
}

func (b *FrameBuffer) Len() int   { return len(b.frames) }
func (b *FrameBuffer) Full() bool { return len(b.frames) >= b.capacity }
