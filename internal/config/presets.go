package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/glyphplay/internal/glyph"
)

// ErrUnknownPreset indicates a ramp preset name that is not defined.
var ErrUnknownPreset = errors.New("config: unknown ramp preset")

// Presets maps ramp names to glyph sequences, densest first.
var Presets = map[string]string{
	"classic": glyph.DefaultString,
	"dense":   "@&%QWNM0gB$#DR8mHXKAUbGOpV4d9h6PkqwSE2]ayjxY5Zoen[ult13If}C{iF|(7J)vTLs?z/*cr!+<>;=^,_:'-.`  ",
	"simple":  "@%#*+=-:. ",
	"blocks":  "█▓▒░ ",
}

// GetPreset returns the named ramp preset.
func GetPreset(name string) (glyph.Ramp, error) {
	s, ok := Presets[name]
	if !ok {
		return glyph.Ramp{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return glyph.NewRamp(s)
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
