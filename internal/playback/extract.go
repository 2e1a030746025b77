package playback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// DefaultPattern names extracted frames with zero-padded sequence numbers.
	DefaultPattern = "frame_%05d.jpg"

	progressInterval = 200 * time.Millisecond
	stderrTail       = 2048
)

// Request describes one extraction run.
type Request struct {
	Input   string
	Dir     string
	Pattern string
	FPS     int
	// Scale is the output frame width; height follows the source aspect.
	Scale int
}

func (r Request) output() string {
	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return filepath.Join(r.Dir, pattern)
}

func (r Request) filter() string {
	return fmt.Sprintf("fps=%d,scale=%d:-1", r.FPS, r.Scale)
}

// Extractor writes a video's frames as image files.
type Extractor interface {
	Extract(ctx context.Context, req Request) error
}

// FFmpeg extracts frames with the ffmpeg executable.
type FFmpeg struct {
	// Binary is the executable name or path. Empty means "ffmpeg" on PATH.
	Binary string
	// Progress receives a frame counter while ffmpeg runs. Nil disables it.
	Progress io.Writer
}

// Args returns the ffmpeg arguments for req.
func (f *FFmpeg) Args(req Request) []string {
	return stream(req).GetArgs()
}

func stream(req Request) *ffmpeg.Stream {
	return ffmpeg.Input(req.Input).
		Output(req.output(), ffmpeg.KwArgs{"vf": req.filter()})
}

// Extract runs ffmpeg and blocks until it exits; cancelling ctx kills it.
// A non-zero exit status is reported as ErrExtractFailed with the tail of
// ffmpeg's stderr.
func (f *FFmpeg) Extract(ctx context.Context, req Request) error {
	if req.FPS <= 0 || req.Scale <= 0 {
		return ErrInvalidRate
	}

	bin := f.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, f.Args(req)...)
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	bar := f.newBar()
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if bar != nil {
				_ = bar.Set(countFrames(req.Dir))
				_ = bar.Finish()
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				return fmt.Errorf("%w: %v: %s", ErrExtractFailed, err, tail(stderr.String()))
			}
			return nil
		case <-ticker.C:
			if bar != nil {
				_ = bar.Set(countFrames(req.Dir))
			}
		}
	}
}

func (f *FFmpeg) newBar() *progressbar.ProgressBar {
	if f.Progress == nil {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(f.Progress),
		progressbar.OptionSetDescription("extracting frames"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTail {
		s = s[len(s)-stderrTail:]
	}
	return s
}
