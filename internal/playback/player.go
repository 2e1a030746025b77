package playback

import (
	"context"
	"log/slog"
	"time"
)

// DefaultFPS is the playback and extraction frame rate.
const DefaultFPS = 10

// DefaultScale is the extracted frame width in pixels.
const DefaultScale = 120

// Session is an alternate-screen terminal session.
type Session interface {
	Enter() error
	Leave() error
	Close() error
}

// FrameDrawer decodes and draws one frame file.
type FrameDrawer interface {
	DrawFile(path string) error
}

// Config holds the playback settings.
type Config struct {
	FPS     int
	Scale   int
	Dir     string
	Pattern string
	// Loop restarts from the first frame after the last one.
	Loop bool
	// KeepFrames plays an existing frames directory without extracting.
	KeepFrames bool
}

// Player extracts and plays video frames.
type Player struct {
	cfg       Config
	extractor Extractor
	drawer    FrameDrawer
	session   Session
	logger    *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPlayer creates a player. A nil logger discards log output.
func NewPlayer(cfg Config, ex Extractor, d FrameDrawer, s Session, logger *slog.Logger) *Player {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{
		cfg:       cfg,
		extractor: ex,
		drawer:    d,
		session:   s,
		logger:    logger,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// FrameInterval is the time budget of one frame at fps.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Delay is how long to wait after a frame that took elapsed. It is never
// negative: late frames are not compensated.
func Delay(interval, elapsed time.Duration) time.Duration {
	if elapsed >= interval {
		return 0
	}
	return interval - elapsed
}

// Play extracts input into the frames directory and plays it back. The
// terminal is restored on every return path.
func (p *Player) Play(ctx context.Context, input string) error {
	if p.cfg.FPS <= 0 || p.cfg.Scale <= 0 {
		return ErrInvalidRate
	}

	if !p.cfg.KeepFrames {
		if err := ResetDir(p.cfg.Dir); err != nil {
			return err
		}

		p.logger.Info("extracting frames", "input", input, "dir", p.cfg.Dir, "fps", p.cfg.FPS, "scale", p.cfg.Scale)
		start := p.now()
		err := p.extractor.Extract(ctx, Request{
			Input:   input,
			Dir:     p.cfg.Dir,
			Pattern: p.cfg.Pattern,
			FPS:     p.cfg.FPS,
			Scale:   p.cfg.Scale,
		})
		if err != nil {
			return err
		}
		p.logger.Info("extraction finished", "elapsed", p.now().Sub(start))
	}

	frames, err := ListFrames(p.cfg.Dir)
	if err != nil {
		return err
	}

	defer p.session.Close()
	if err := p.session.Enter(); err != nil {
		return err
	}

	for {
		if err := p.playOnce(ctx, frames); err != nil {
			return err
		}
		if !p.cfg.Loop {
			break
		}
	}

	return p.session.Leave()
}

func (p *Player) playOnce(ctx context.Context, frames []string) error {
	interval := FrameInterval(p.cfg.FPS)

	for i, path := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := p.now()
		if err := p.drawer.DrawFile(path); err != nil {
			return &FrameError{Index: i, Path: path, Err: err}
		}
		elapsed := p.now().Sub(start)

		p.logger.Debug("frame drawn", "index", i, "elapsed", elapsed)
		if err := p.sleep(ctx, Delay(interval, elapsed)); err != nil {
			return err
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
