package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/san-kum/glyphplay/internal/config"
	"github.com/san-kum/glyphplay/internal/export"
	"github.com/san-kum/glyphplay/internal/logging"
	"github.com/san-kum/glyphplay/internal/render"
	"github.com/spf13/cobra"
)

const (
	defaultVideo = "assets/sample_video.mp4"
	defaultImage = "assets/image.png"
)

var (
	configFile string
	logDir     string
	verbose    bool
	// Rendering
	rampStr     string
	preset      string
	invert      bool
	transparent bool
	square      bool
	profile     string
	columns     int
	// Image
	watchFile bool
	// Playback
	fps        int
	scale      int
	framesDir  string
	ffmpegBin  string
	loop       bool
	keepFrames bool
	// Export / stats
	outFile string
	format  string
	bins    int

	cfg *config.Config
)

// main registers commands and flags and runs the root command. With no
// subcommand it plays the bundled sample video. It exits with status 1 if
// the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "glyphplay [video]",
		Short:             "render images and video as colored ASCII art",
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              playVideo,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "write logs to this directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&rampStr, "ramp", "", "glyph ramp, densest first (overrides --preset)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", config.DefaultPreset, "ramp preset")
	rootCmd.PersistentFlags().BoolVar(&invert, "invert", false, "reverse the ramp (dense glyphs for bright pixels)")
	rootCmd.PersistentFlags().BoolVar(&transparent, "transparent", false, "draw fully transparent pixels as blanks")
	rootCmd.PersistentFlags().BoolVar(&square, "square", false, "fit images inside a square box instead of the terminal height")
	rootCmd.PersistentFlags().StringVar(&profile, "color", config.DefaultProfile, "color profile: "+strings.Join(render.Profiles, ", "))
	rootCmd.PersistentFlags().IntVar(&columns, "columns", config.DefaultColumns, "column count when output is not a terminal")

	addPlayFlags(rootCmd)

	imageCmd := &cobra.Command{
		Use:   "image [path]",
		Short: "render a still image",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderImage,
	}
	imageCmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "re-render when the file changes")

	playCmd := &cobra.Command{
		Use:   "play [video]",
		Short: "extract frames with ffmpeg and play them back",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playVideo,
	}
	addPlayFlags(playCmd)

	statsCmd := &cobra.Command{
		Use:   "stats [path]",
		Short: "luminance histogram and glyph usage of an image",
		Args:  cobra.ExactArgs(1),
		RunE:  imageStats,
	}
	statsCmd.Flags().IntVar(&bins, "bins", 32, "histogram buckets")

	exportCmd := &cobra.Command{
		Use:   "export [path]",
		Short: "write a rendered image to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportImage,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: "+strings.Join(export.Formats, ", "))

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available ramp presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(imageCmd, playCmd, statsCmd, exportCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logPath, err := execute(ctx, rootCmd)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		if logPath != "" {
			fmt.Fprintln(os.Stderr, subtle.Render("log: "+logPath))
		}
		os.Exit(1)
	}
}

// execute runs cmd and closes the log file whether or not the command
// failed. It returns the log path that was in use, if any.
func execute(ctx context.Context, cmd *cobra.Command) (string, error) {
	err := cmd.ExecuteContext(ctx)
	logPath := logging.Path()
	if err != nil {
		logging.Logger().Error("command failed", "command", cmd.Name(), "error", err)
	}
	if cerr := logging.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return logPath, err
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate for extraction and playback")
	cmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "extracted frame width in pixels")
	cmd.Flags().StringVar(&framesDir, "frames", config.DefaultFramesDir, "working directory for extracted frames")
	cmd.Flags().StringVar(&ffmpegBin, "ffmpeg", config.DefaultFFmpeg, "ffmpeg executable")
	cmd.Flags().BoolVar(&loop, "loop", false, "repeat playback until interrupted")
	cmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "play the existing frames directory without extracting")
}

// setup loads the config file, applies explicitly set flags on top of it
// and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("ramp") {
		cfg.Ramp = rampStr
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
		if !flags.Changed("ramp") {
			cfg.Ramp = ""
		}
	}
	if flags.Changed("invert") {
		cfg.Invert = invert
	}
	if flags.Changed("transparent") {
		cfg.Transparency = transparent
	}
	if flags.Changed("square") {
		cfg.Square = square
	}
	if flags.Changed("color") {
		cfg.ColorProfile = profile
	}
	if flags.Changed("columns") {
		cfg.Columns = columns
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = logDir
	}
	if flags.Lookup("fps") != nil {
		if flags.Changed("fps") {
			cfg.Playback.FPS = fps
		}
		if flags.Changed("scale") {
			cfg.Playback.Scale = scale
		}
		if flags.Changed("frames") {
			cfg.Playback.FramesDir = framesDir
		}
		if flags.Changed("ffmpeg") {
			cfg.Playback.FFmpeg = ffmpegBin
		}
		if flags.Changed("loop") {
			cfg.Playback.Loop = loop
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if err := logging.Initialize(cfg.LogDir, level); err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	logging.Logger().Debug("config loaded", "command", cmd.Name(), "config", configFile)
	return nil
}

func argOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
