package booth

import "errors"

var (
	// ErrCapacityExceeded reports an append to a full frame buffer. It only
	// happens when a capture tick fires after the buffer was completed.
	ErrCapacityExceeded = errors.New("booth: frame buffer capacity exceeded")
	// ErrInsufficientFrames reports a review that started with fewer than
	// FrameCapacity frames. Playback is skipped and the session cools down.
	ErrInsufficientFrames = errors.New("booth: insufficient frames for playback")
)
