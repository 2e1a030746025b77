package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/glyphplay/internal/analysis"
	"github.com/san-kum/glyphplay/internal/config"
	"github.com/san-kum/glyphplay/internal/export"
	"github.com/san-kum/glyphplay/internal/logging"
	"github.com/san-kum/glyphplay/internal/pipeline"
	"github.com/san-kum/glyphplay/internal/playback"
	"github.com/san-kum/glyphplay/internal/raster"
	"github.com/san-kum/glyphplay/internal/render"
	"github.com/san-kum/glyphplay/internal/term"
	"github.com/san-kum/glyphplay/internal/watch"
	"github.com/spf13/cobra"
)

// newPipeline builds the shared pipeline from cfg. When d is nil the grid is
// not drawn to the screen, so its height is left unbounded.
func newPipeline(d pipeline.Drawer) (*pipeline.Pipeline, error) {
	ramp, err := cfg.GetRamp()
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{
		Ramp:         ramp,
		Transparency: cfg.Transparency,
		Square:       cfg.Square,
		Columns:      term.Columns(os.Stdout, cfg.Columns),
	}
	if d != nil {
		opts.Rows = term.Rows(os.Stdout)
	}
	return pipeline.New(opts, d), nil
}

func renderImage(cmd *cobra.Command, args []string) error {
	path := argOr(args, defaultImage)

	mode := render.ModeClear
	if !term.IsTerminal(os.Stdout) {
		mode = render.ModeInline
	}
	r, err := render.New(os.Stdout, mode, cfg.ColorProfile)
	if err != nil {
		return err
	}
	pipe, err := newPipeline(r)
	if err != nil {
		return err
	}

	if !watchFile {
		return pipe.DrawFile(path)
	}

	logging.Logger().Info("watching image", "path", path)
	return ignoreCanceled(watch.File(cmd.Context(), path, func() error {
		return pipe.DrawFile(path)
	}))
}

func playVideo(cmd *cobra.Command, args []string) error {
	input := argOr(args, defaultVideo)

	if !keepFrames {
		if _, err := os.Stat(input); err != nil {
			return err
		}
	}

	r, err := render.New(os.Stdout, render.ModeReposition, cfg.ColorProfile)
	if err != nil {
		return err
	}
	pipe, err := newPipeline(r)
	if err != nil {
		return err
	}

	guard := term.NewGuard(os.Stdout)
	extractor := &playback.FFmpeg{Binary: cfg.Playback.FFmpeg}
	if term.IsTerminal(os.Stderr) {
		extractor.Progress = os.Stderr
	}

	player := playback.NewPlayer(playback.Config{
		FPS:        cfg.Playback.FPS,
		Scale:      cfg.Playback.Scale,
		Dir:        cfg.Playback.FramesDir,
		Pattern:    cfg.Playback.Pattern,
		Loop:       cfg.Playback.Loop,
		KeepFrames: keepFrames,
	}, extractor, pipe, guard, logging.Logger())

	return ignoreCanceled(player.Play(cmd.Context(), input))
}

func imageStats(cmd *cobra.Command, args []string) error {
	img, err := raster.Open(args[0])
	if err != nil {
		return err
	}
	pipe, err := newPipeline(nil)
	if err != nil {
		return err
	}

	grid := pipe.Grid(img)
	stats := analysis.Analyze(grid, bins)

	fmt.Println(headerStyle.Render(args[0]))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("source"), valueStyle.Render(fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())))
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("grid"), valueStyle.Render(fmt.Sprintf("%dx%d", grid.Width(), grid.Rows())))
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("cells"), valueStyle.Render(fmt.Sprint(stats.Cells)))
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("luminance"), valueStyle.Render(fmt.Sprintf("min %.1f  mean %.1f  max %.1f", stats.Min, stats.Mean, stats.Max)))
	w.Flush()

	if plot := analysis.Plot(stats, 64, 10); plot != "" {
		fmt.Println()
		fmt.Println(plot)
	}

	if len(stats.Usage) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("glyph usage"))
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GLYPH\tCELLS\tSHARE")
		for i, u := range stats.Usage {
			if i == 10 {
				break
			}
			fmt.Fprintf(w, "%q\t%d\t%.1f%%\n", u.Glyph, u.Count, 100*float64(u.Count)/float64(stats.Cells))
		}
		w.Flush()
	}

	return nil
}

func exportImage(cmd *cobra.Command, args []string) error {
	img, err := raster.Open(args[0])
	if err != nil {
		return err
	}
	pipe, err := newPipeline(nil)
	if err != nil {
		return err
	}
	grid := pipe.Grid(img)
	if grid.Empty() {
		return fmt.Errorf("%s renders to an empty grid; raise --columns", args[0])
	}

	if outFile == "" {
		return export.Write(os.Stdout, grid, format)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := export.Write(f, grid, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%dx%d cells, %s)\n", outFile, grid.Width(), grid.Rows(), format)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(headerStyle.Render("ramp presets") + subtle.Render("  (densest first)"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		marker := " "
		if name == cfg.Preset && cfg.Ramp == "" {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%q\n", marker, name, strings.TrimRight(config.Presets[name], " ")+" ")
	}
	return w.Flush()
}
