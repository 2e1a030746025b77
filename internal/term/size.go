package term

import (
	"os"

	xterm "golang.org/x/term"
)

// DefaultColumns is used when the output is not a terminal.
const DefaultColumns = 80

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// Size returns the width and height of the terminal attached to f.
func Size(f *os.File) (width, height int, err error) {
	return xterm.GetSize(int(f.Fd()))
}

// Columns returns a function reporting the current column count of f,
// queried on every call. fallback is returned when f is not a terminal.
func Columns(f *os.File, fallback int) func() int {
	if fallback <= 0 {
		fallback = DefaultColumns
	}
	return func() int {
		w, _, err := Size(f)
		if err != nil || w <= 0 {
			return fallback
		}
		return w
	}
}

// Rows returns a function reporting how many image rows can be drawn on f
// without scrolling, queried on every call. Each drawn row ends in a
// newline, so one line is kept free. It reports 0 (no limit) when f is not
// a terminal.
func Rows(f *os.File) func() int {
	return func() int {
		_, h, err := Size(f)
		if err != nil || h <= 1 {
			return 0
		}
		return h - 1
	}
}
