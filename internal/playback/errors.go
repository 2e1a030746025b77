package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrExtractFailed indicates the extraction process exited unsuccessfully.
	ErrExtractFailed = errors.New("playback: frame extraction failed")

	// ErrNoFrames indicates an empty frames directory.
	ErrNoFrames = errors.New("playback: no frames to play")

	// ErrInvalidRate indicates a non-positive frame rate or scale.
	ErrInvalidRate = errors.New("playback: frame rate and scale must be positive")
)

// FrameError wraps an error with the frame being played.
type FrameError struct {
	Index int
	Path  string
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
