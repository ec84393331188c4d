// Command heroscene renders the café backdrop scenes headlessly, writing PNG
// frames and an optional JSON snapshot of the final state.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/feelfresh/heroscene"
	"github.com/feelfresh/heroscene/raster"
)

type options struct {
	configPath string
	scene      string
	frames     uint64
	outDir     string
	snapshot   string
	watch      bool
	realtime   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "TOML config file (defaults are used when empty)")
	flag.StringVar(&opts.scene, "scene", "", "scene to render, \"hero\" or \"specials\"; overrides the config")
	flag.Uint64Var(&opts.frames, "frames", 0, "frames to render; overrides the config, 0 keeps it")
	flag.StringVar(&opts.outDir, "out", "", "directory for PNG frames; overrides render.out_dir")
	flag.StringVar(&opts.snapshot, "snapshot", "", "write a JSON snapshot of the last frame to this file")
	flag.BoolVar(&opts.watch, "watch", false, "reload the config file when it changes")
	flag.BoolVar(&opts.realtime, "realtime", false, "pace frames at the configured fps even when -frames is set")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "heroscene:", err)
		os.Exit(1)
	}
}

func loadConfig(opts options) (heroscene.Config, error) {
	cfg := heroscene.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := heroscene.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if opts.scene != "" {
		cfg.Scene = opts.scene
	}
	if opts.frames > 0 {
		cfg.Frames = opts.frames
	}
	if opts.outDir != "" {
		cfg.Render.OutDir = opts.outDir
	}
	return cfg, cfg.Validate()
}

func run(opts options) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.watch && opts.configPath == "" {
		return errors.New("-watch needs -config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Offline renders step the clock by exactly one frame per tick.
	var clock heroscene.ElapsedSource = heroscene.NewMonotonicClock()
	fps := cfg.FPS
	if cfg.Frames > 0 && !opts.realtime && cfg.FPS > 0 {
		clock = &heroscene.FixedStepClock{Step: 1 / float32(cfg.FPS)}
		fps = 0
	}

	app := heroscene.NewAppBuilder().
		UseModule(
			heroscene.LoggingModule{Prefix: "heroscene", Debug: cfg.Debug},
			heroscene.ConfigModule{Config: cfg},
			heroscene.TimeModule{Source: clock},
			cfg.SceneModule(),
		).
		Build()
	log := app.Logger()

	background, err := heroscene.ParseColor(cfg.Render.Background)
	if err != nil {
		return err
	}
	ropts := raster.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		DPR:        cfg.Render.DPR,
		Background: background.RGBA(1),
	}
	if cfg.Render.OutDir != "" {
		ropts.Sink = raster.PNGSink{Dir: cfg.Render.OutDir}
		log.Infof("writing frames to %s", cfg.Render.OutDir)
	}
	if err := app.UseRenderer(raster.Name, raster.New(ropts)); err != nil {
		return err
	}

	if err := app.Mount(); err != nil {
		return err
	}
	defer func() {
		if uerr := app.Unmount(); uerr != nil && err == nil {
			err = fmt.Errorf("unmount: %w", uerr)
		}
	}()

	var updates <-chan heroscene.Config
	if opts.watch {
		w, err := heroscene.WatchConfig(ctx, opts.configPath, log)
		if err != nil {
			return err
		}
		defer w.Close()
		updates = w.Updates()
	}

	err = app.Run(ctx, heroscene.RunOptions{FPS: fps, Frames: cfg.Frames, Updates: updates})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}

	if opts.snapshot != "" {
		t, _ := heroscene.Resource[heroscene.Time](app)
		snap := heroscene.TakeSnapshot(app.Scene(), t.Frame, t.Elapsed)
		if err := heroscene.SaveSnapshot(snap, opts.snapshot); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		log.Infof("snapshot written to %s (%d nodes)", opts.snapshot, len(snap.Nodes))
	}
	for _, s := range app.Loop().Stats() {
		log.Debugf("%-10s %-28s calls=%d total=%s", s.Stage, s.Name, s.Calls, s.Total)
	}
	return nil
}
