package playback

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFFmpeg_Args(t *testing.T) {
	f := &FFmpeg{}
	req := Request{Input: "assets/sample_video.mp4", Dir: "assets/frames", FPS: 10, Scale: 120}
	args := f.Args(req)

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i assets/sample_video.mp4",
		"-vf fps=10,scale=120:-1",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in args %q", want, joined)
		}
	}
	if last := args[len(args)-1]; last != filepath.Join("assets/frames", DefaultPattern) {
		t.Errorf("expected output pattern last, got %q", last)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestFFmpeg_ExtractFailure(t *testing.T) {
	bin := writeScript(t, `echo "Invalid data found when processing input" >&2; exit 1`)
	f := &FFmpeg{Binary: bin}

	err := f.Extract(context.Background(), Request{Input: "x.mp4", Dir: t.TempDir(), FPS: 10, Scale: 120})
	if !errors.Is(err, ErrExtractFailed) {
		t.Fatalf("expected ErrExtractFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid data") {
		t.Errorf("expected stderr tail in error, got %v", err)
	}
}

func TestFFmpeg_ExtractSuccess(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, `for a in "$@"; do last="$a"; done; d=$(dirname "$last"); touch "$d/frame_00001.jpg" "$d/frame_00002.jpg"`)

	var progress bytes.Buffer
	f := &FFmpeg{Binary: bin, Progress: &progress}
	if err := f.Extract(context.Background(), Request{Input: "x.mp4", Dir: dir, FPS: 10, Scale: 120}); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	frames, err := ListFrames(dir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(frames))
	}
}

func TestFFmpeg_MissingBinary(t *testing.T) {
	f := &FFmpeg{Binary: filepath.Join(t.TempDir(), "no-such-ffmpeg")}
	err := f.Extract(context.Background(), Request{Input: "x.mp4", Dir: t.TempDir(), FPS: 10, Scale: 120})
	if !errors.Is(err, ErrExtractFailed) {
		t.Errorf("expected ErrExtractFailed, got %v", err)
	}
}

func TestFFmpeg_InvalidRate(t *testing.T) {
	f := &FFmpeg{}
	if err := f.Extract(context.Background(), Request{FPS: 0, Scale: 120}); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
}
