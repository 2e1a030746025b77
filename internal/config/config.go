package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/glyphplay/internal/glyph"
	"github.com/san-kum/glyphplay/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 10
	DefaultScale     = 120
	DefaultColumns   = 80
	DefaultFramesDir = "assets/frames"
	DefaultPattern   = "frame_%05d.jpg"
	DefaultFFmpeg    = "ffmpeg"
	DefaultProfile   = "truecolor"
	DefaultPreset    = "classic"
)

// ErrInvalid indicates a configuration value outside its valid range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	// Ramp overrides Preset when set.
	Ramp         string         `yaml:"ramp,omitempty"`
	Preset       string         `yaml:"preset"`
	Invert       bool           `yaml:"invert"`
	Transparency bool           `yaml:"transparency"`
	Square       bool           `yaml:"square"`
	ColorProfile string         `yaml:"color_profile"`
	Columns      int            `yaml:"default_columns"`
	Playback     PlaybackConfig `yaml:"playback"`
	LogDir       string         `yaml:"log_dir,omitempty"`
}

type PlaybackConfig struct {
	FPS       int    `yaml:"fps"`
	Scale     int    `yaml:"scale"`
	FramesDir string `yaml:"frames_dir"`
	Pattern   string `yaml:"frame_pattern"`
	FFmpeg    string `yaml:"ffmpeg"`
	Loop      bool   `yaml:"loop"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:       DefaultPreset,
		ColorProfile: DefaultProfile,
		Columns:      DefaultColumns,
		Playback: PlaybackConfig{
			FPS:       DefaultFPS,
			Scale:     DefaultScale,
			FramesDir: DefaultFramesDir,
			Pattern:   DefaultPattern,
			FFmpeg:    DefaultFFmpeg,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field that has a restricted range.
func (c *Config) Validate() error {
	if _, err := c.GetRamp(); err != nil {
		return err
	}
	if _, _, err := render.ParseProfile(c.ColorProfile); err != nil {
		return err
	}
	if c.Playback.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Playback.FPS)
	}
	if c.Playback.Scale <= 0 {
		return fmt.Errorf("%w: scale %d", ErrInvalid, c.Playback.Scale)
	}
	if c.Columns <= 0 {
		return fmt.Errorf("%w: default_columns %d", ErrInvalid, c.Columns)
	}
	if c.Playback.FramesDir == "" {
		return fmt.Errorf("%w: frames_dir is empty", ErrInvalid)
	}
	return nil
}

// GetRamp resolves the configured ramp: an explicit ramp string wins over
// the preset, and Invert reverses the result.
func (c *Config) GetRamp() (glyph.Ramp, error) {
	var (
		r   glyph.Ramp
		err error
	)
	if c.Ramp != "" {
		r, err = glyph.NewRamp(c.Ramp)
	} else {
		r, err = GetPreset(c.Preset)
	}
	if err != nil {
		return glyph.Ramp{}, err
	}
	if c.Invert {
		r = r.Reverse()
	}
	return r, nil
}
