// Package render writes glyph grids to a terminal with true-color styling.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/san-kum/glyphplay/internal/glyph"
)

// ErrUnknownProfile indicates an unsupported color profile name.
var ErrUnknownProfile = errors.New("render: unknown color profile")

// Mode selects how the screen is prepared before a grid is drawn.
type Mode int

const (
	// ModeClear erases the screen before drawing. Used for single images.
	ModeClear Mode = iota
	// ModeReposition only homes the cursor, overdrawing the previous frame
	// without flicker. Used for video playback.
	ModeReposition
	// ModeInline writes rows at the current position with no cursor
	// movement, for pipes and files.
	ModeInline
)

func (m Mode) String() string {
	switch m {
	case ModeClear:
		return "clear"
	case ModeReposition:
		return "reposition"
	case ModeInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Profiles lists the accepted color profile names.
var Profiles = []string{"truecolor", "ansi256", "ansi", "ascii", "auto"}

// ParseProfile maps a profile name to a termenv profile. "auto" reports
// ok=false so the caller keeps the detected profile.
func ParseProfile(name string) (p termenv.Profile, ok bool, err error) {
	switch strings.ToLower(name) {
	case "", "truecolor":
		return termenv.TrueColor, true, nil
	case "ansi256":
		return termenv.ANSI256, true, nil
	case "ansi":
		return termenv.ANSI, true, nil
	case "ascii", "none":
		return termenv.Ascii, true, nil
	case "auto":
		return termenv.Ascii, false, nil
	default:
		return termenv.Ascii, false, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
}

// styleCacheSize bounds the per-renderer color sequence cache.
const styleCacheSize = 1 << 14

var resetStyle = termenv.CSI + termenv.ResetSeq + "m"

// Renderer serializes grids, one terminal line per row.
type Renderer struct {
	out     *bufio.Writer
	profile termenv.Profile
	mode    Mode
	// styles caches the SGR prefix per packed RGB value.
	styles map[uint32]string
}

// New creates a renderer writing to w. profile is one of [Profiles]; "auto"
// uses the profile lipgloss detects for w.
func New(w io.Writer, mode Mode, profile string) (*Renderer, error) {
	p, force, err := ParseProfile(profile)
	if err != nil {
		return nil, err
	}
	if !force {
		p = lipgloss.NewRenderer(w).ColorProfile()
	}

	return &Renderer{
		out:     bufio.NewWriterSize(w, 64*1024),
		profile: p,
		mode:    mode,
		styles:  make(map[uint32]string),
	}, nil
}

// Draw writes grid and flushes once all rows are written.
func (r *Renderer) Draw(grid glyph.Grid) error {
	switch r.mode {
	case ModeClear:
		r.out.WriteString(ansi.EraseEntireScreen)
		r.out.WriteString(ansi.CursorHomePosition)
	case ModeReposition:
		r.out.WriteString(ansi.CursorHomePosition)
	}

	for _, row := range grid {
		for _, c := range row {
			r.writeCell(r.out, c)
		}
		if err := r.out.WriteByte('\n'); err != nil {
			return err
		}
	}

	return r.out.Flush()
}

// Line renders one row. Each cell becomes its glyph twice so a pixel covers
// a roughly square area; transparent cells become two blanks.
func (r *Renderer) Line(row []glyph.Cell) string {
	var sb strings.Builder
	for _, c := range row {
		r.writeCell(&sb, c)
	}
	return sb.String()
}

// Cell renders a single cell.
func (r *Renderer) Cell(c glyph.Cell) string {
	var sb strings.Builder
	r.writeCell(&sb, c)
	return sb.String()
}

type cellWriter interface {
	WriteString(s string) (int, error)
	WriteRune(c rune) (int, error)
}

func (r *Renderer) writeCell(w cellWriter, c glyph.Cell) {
	if c.Transparent() {
		w.WriteString("  ")
		return
	}
	seq := r.style(c.R, c.G, c.B)
	w.WriteString(seq)
	w.WriteRune(c.Glyph)
	w.WriteRune(c.Glyph)
	if seq != "" {
		w.WriteString(resetStyle)
	}
}

// style returns the foreground SGR sequence for an RGB value under the
// renderer's profile, or "" when the profile has no colors.
func (r *Renderer) style(red, green, blue uint8) string {
	key := uint32(red)<<16 | uint32(green)<<8 | uint32(blue)
	if seq, ok := r.styles[key]; ok {
		return seq
	}
	if len(r.styles) >= styleCacheSize {
		clear(r.styles)
	}

	seq := r.profile.Color(hexColor(red, green, blue)).Sequence(false)
	if seq != "" {
		seq = termenv.CSI + seq + "m"
	}
	r.styles[key] = seq
	return seq
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
