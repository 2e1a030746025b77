package playback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type event struct {
	kind string
	arg  string
}

type fakeExtractor struct {
	events *[]event
	frames []string
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, req Request) error {
	*f.events = append(*f.events, event{"extract", req.Input})
	if f.err != nil {
		return f.err
	}
	for _, name := range f.frames {
		if err := os.WriteFile(filepath.Join(req.Dir, name), nil, 0644); err != nil {
			return err
		}
	}
	return nil
}

type fakeDrawer struct {
	events *[]event
	clock  *fakeClock
	cost   time.Duration
	failAt int
}

func (d *fakeDrawer) DrawFile(path string) error {
	*d.events = append(*d.events, event{"draw", filepath.Base(path)})
	d.clock.t = d.clock.t.Add(d.cost)
	if d.failAt > 0 && d.countDraws() == d.failAt {
		return errors.New("corrupt jpeg")
	}
	return nil
}

func (d *fakeDrawer) countDraws() int {
	n := 0
	for _, e := range *d.events {
		if e.kind == "draw" {
			n++
		}
	}
	return n
}

type fakeSession struct {
	events *[]event
	left   bool
}

func (s *fakeSession) Enter() error {
	*s.events = append(*s.events, event{"enter", ""})
	s.left = false
	return nil
}

func (s *fakeSession) Leave() error {
	if s.left {
		return nil
	}
	s.left = true
	*s.events = append(*s.events, event{"leave", ""})
	return nil
}

func (s *fakeSession) Close() error {
	return s.Leave()
}

type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
	return ctx.Err()
}

func kinds(events []event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.kind
	}
	return out
}

var _ = Describe("Player", func() {
	var (
		events    []event
		clock     *fakeClock
		extractor *fakeExtractor
		drawer    *fakeDrawer
		session   *fakeSession
		cfg       Config
	)

	newPlayer := func() *Player {
		p := NewPlayer(cfg, extractor, drawer, session, nil)
		p.now = clock.now
		p.sleep = clock.sleep
		return p
	}

	BeforeEach(func() {
		events = nil
		clock = &fakeClock{t: time.Unix(0, 0)}
		extractor = &fakeExtractor{events: &events, frames: []string{"frame_00010.jpg", "frame_00002.jpg", "frame_00001.jpg"}}
		drawer = &fakeDrawer{events: &events, clock: clock, cost: 30 * time.Millisecond}
		session = &fakeSession{events: &events}
		cfg = Config{FPS: 10, Scale: 120, Dir: filepath.Join(GinkgoT().TempDir(), "frames")}
	})

	It("extracts, enters, draws frames in sequence order and leaves", func() {
		Expect(newPlayer().Play(context.Background(), "sample.mp4")).To(Succeed())

		Expect(kinds(events)).To(Equal([]string{"extract", "enter", "draw", "draw", "draw", "leave"}))
		Expect(events[2].arg).To(Equal("frame_00001.jpg"))
		Expect(events[3].arg).To(Equal("frame_00002.jpg"))
		Expect(events[4].arg).To(Equal("frame_00010.jpg"))
	})

	It("sleeps for the remainder of each frame interval", func() {
		Expect(newPlayer().Play(context.Background(), "sample.mp4")).To(Succeed())
		Expect(clock.sleeps).To(Equal([]time.Duration{70 * time.Millisecond, 70 * time.Millisecond, 70 * time.Millisecond}))
	})

	It("does not catch up after a slow frame", func() {
		drawer.cost = 250 * time.Millisecond
		Expect(newPlayer().Play(context.Background(), "sample.mp4")).To(Succeed())
		Expect(clock.sleeps).To(HaveEach(time.Duration(0)))
		Expect(events).To(HaveLen(6))
	})

	It("clears stale frames from a previous run", func() {
		Expect(os.MkdirAll(cfg.Dir, 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(cfg.Dir, "frame_00099.jpg"), nil, 0644)).To(Succeed())

		Expect(newPlayer().Play(context.Background(), "sample.mp4")).To(Succeed())
		Expect(events).NotTo(ContainElement(event{"draw", "frame_00099.jpg"}))
	})

	It("plays an existing directory without extracting when keeping frames", func() {
		Expect(os.MkdirAll(cfg.Dir, 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(cfg.Dir, "frame_00001.png"), nil, 0644)).To(Succeed())
		cfg.KeepFrames = true

		Expect(newPlayer().Play(context.Background(), "ignored.mp4")).To(Succeed())
		Expect(kinds(events)).To(Equal([]string{"enter", "draw", "leave"}))
	})

	It("stops before touching the terminal when extraction fails", func() {
		extractor.err = fmt.Errorf("%w: exit status 1", ErrExtractFailed)

		err := newPlayer().Play(context.Background(), "sample.mp4")
		Expect(err).To(MatchError(ErrExtractFailed))
		Expect(kinds(events)).To(Equal([]string{"extract"}))
	})

	It("restores the terminal when a frame fails to draw", func() {
		drawer.failAt = 2

		err := newPlayer().Play(context.Background(), "sample.mp4")

		var frameErr *FrameError
		Expect(errors.As(err, &frameErr)).To(BeTrue())
		Expect(frameErr.Index).To(Equal(1))
		Expect(frameErr.Path).To(HaveSuffix("frame_00002.jpg"))
		Expect(kinds(events)).To(Equal([]string{"extract", "enter", "draw", "draw", "leave"}))
	})

	It("stops on cancellation and still restores the terminal", func() {
		cfg.Loop = true
		ctx, cancel := context.WithCancel(context.Background())
		p := newPlayer()
		draws := 0
		p.sleep = func(ctx context.Context, d time.Duration) error {
			draws++
			if draws == 5 {
				cancel()
			}
			return ctx.Err()
		}

		Expect(p.Play(ctx, "sample.mp4")).To(MatchError(context.Canceled))
		Expect(draws).To(Equal(5))
		Expect(events[len(events)-1].kind).To(Equal("leave"))
	})

	It("rejects a non-positive frame rate", func() {
		cfg.FPS = 0
		Expect(newPlayer().Play(context.Background(), "sample.mp4")).To(MatchError(ErrInvalidRate))
		Expect(events).To(BeEmpty())
	})
})

var _ = Describe("pacing", func() {
	DescribeTable("Delay",
		func(interval, elapsed, want time.Duration) {
			Expect(Delay(interval, elapsed)).To(Equal(want))
		},
		Entry("fast frame", 100*time.Millisecond, 30*time.Millisecond, 70*time.Millisecond),
		Entry("exact frame", 100*time.Millisecond, 100*time.Millisecond, time.Duration(0)),
		Entry("slow frame", 100*time.Millisecond, 180*time.Millisecond, time.Duration(0)),
	)

	It("derives the interval from the frame rate", func() {
		Expect(FrameInterval(10)).To(Equal(100 * time.Millisecond))
		Expect(FrameInterval(24)).To(Equal(time.Second / 24))
		Expect(FrameInterval(0)).To(Equal(time.Duration(0)))
	})
})
