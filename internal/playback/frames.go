package playback

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var frameExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// ResetDir removes dir if it exists and recreates it empty.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("reset %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("reset %s: %w", dir, err)
	}
	return nil
}

// ListFrames returns the image files in dir ordered by sequence number.
// Names without a number sort after numbered ones, by name.
func ListFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type frame struct {
		name string
		seq  int
		ok   bool
	}
	frames := make([]frame, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !frameExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		seq, ok := sequenceNumber(e.Name())
		frames = append(frames, frame{name: e.Name(), seq: seq, ok: ok})
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrames, dir)
	}

	sort.Slice(frames, func(i, j int) bool {
		a, b := frames[i], frames[j]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && a.seq != b.seq {
			return a.seq < b.seq
		}
		return a.name < b.name
	})

	paths := make([]string, len(frames))
	for i, f := range frames {
		paths[i] = filepath.Join(dir, f.name)
	}
	return paths, nil
}

// sequenceNumber parses the last run of digits in the file's base name.
func sequenceNumber(name string) (int, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	end := -1
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] >= '0' && base[i] <= '9' {
			end = i + 1
			break
		}
	}
	if end < 0 {
		return 0, false
	}
	start := end
	for start > 0 && base[start-1] >= '0' && base[start-1] <= '9' {
		start--
	}
	n, err := strconv.Atoi(base[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func countFrames(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if frameExts[strings.ToLower(filepath.Ext(e.Name()))] {
			n++
		}
	}
	return n
}
