package heroscene

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

type Module interface {
	Install(app *App)
}

// App ties a render loop to one mountable scene and at most one renderer.
type App struct {
	resources map[reflect.Type]any
	loop      *RenderLoop

	compose      func() *Scene
	renderer     Renderer
	rendererName RendererName

	scene     *Scene
	handles   []Handle
	renderErr error

	// Elapsed seconds fed to the loop count from the first frame after
	// the latest mount.
	origin float32
	rebase bool
}

func NewApp() *App {
	return &App{
		resources: make(map[reflect.Type]any),
		loop:      NewRenderLoop(nil),
	}
}

func (app *App) UseModules(modules ...Module) *App {
	for _, m := range modules {
		m.Install(app)
	}
	return app
}

func (app *App) Loop() *RenderLoop {
	return app.loop
}

// Scene is the mounted scene, or nil.
func (app *App) Scene() *Scene {
	return app.scene
}

// SetComposer installs the function Mount uses to build the scene.
func (app *App) SetComposer(compose func() *Scene) {
	app.compose = compose
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
		if l, ok := resource.(Logger); ok {
			app.loop.log = l
		}
	}
	return app
}

// Resource returns the resource of type T, if installed.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	t, ok := r.(*T)
	return t, ok
}

type RunOptions struct {
	// FPS paces ticks with a ticker; zero runs frames back to back. A
	// paced run follows the fps of reloaded configs; an unpaced run stays
	// unpaced.
	FPS int
	// Frames stops the loop after this many ticks; zero runs until the
	// context is cancelled.
	Frames uint64
	// Updates delivers reloaded configs, applied between ticks.
	Updates <-chan Config
}

// Run drives the loop of a mounted app. It returns nil once the frame limit
// is reached, the context error on cancellation, or the first render error.
func (app *App) Run(ctx context.Context, opts RunOptions) error {
	if app.scene == nil {
		return ErrNotMounted
	}
	var src ElapsedSource
	if t, ok := Resource[Time](app); ok {
		src = t.Source()
	}
	if src == nil {
		src = NewMonotonicClock()
	}

	log := app.Logger()
	log.Infof("render loop started (fps=%d, frames=%d)", opts.FPS, opts.Frames)
	defer func() { log.Infof("render loop stopped after %d frames", app.loop.Frames()) }()

	var ticker *time.Ticker
	var tick <-chan time.Time
	pace := func(fps int) {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
		if fps > 0 {
			ticker = time.NewTicker(time.Second / time.Duration(fps))
			tick = ticker.C
		}
	}
	paced := opts.FPS > 0
	pace(opts.FPS)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	// Frames run back to back when unpaced.
	immediate := make(chan time.Time)
	close(immediate)

	start := app.loop.Frames()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Frames > 0 && app.loop.Frames()-start >= opts.Frames {
			return nil
		}
		wait := tick
		if wait == nil {
			wait = immediate
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cfg, ok := <-opts.Updates:
			if !ok {
				opts.Updates = nil
				continue
			}
			if paced && cfg.FPS != opts.FPS {
				opts.FPS = cfg.FPS
				pace(opts.FPS)
			}
			if err := app.Reconfigure(cfg); err != nil {
				return err
			}
			continue
		case <-wait:
		}

		now := src.Elapsed()
		if app.rebase {
			app.origin, app.rebase = now, false
		}
		app.loop.Tick(now - app.origin)
		if app.renderErr != nil {
			err := app.renderErr
			app.renderErr = nil
			return fmt.Errorf("render frame %d: %w", app.loop.Frames(), err)
		}
	}
}

// Reconfigure applies a reloaded config. Logging changes take effect
// immediately; scene changes remount the scene. Keys that only apply at
// startup are reported and keep their running values.
func (app *App) Reconfigure(cfg Config) error {
	log := app.Logger()
	log.SetDebug(cfg.Debug)

	if cur, ok := Resource[Config](app); ok {
		if keys := restartKeys(*cur, cfg); len(keys) > 0 {
			log.Warnf("config keys %v changed; restart to apply them", keys)
		}
		cfg.Scene, cfg.Frames, cfg.Render = cur.Scene, cur.Frames, cur.Render
		*cur = cfg
	}

	changed := false
	if hero, ok := Resource[HeroOptions](app); ok {
		if next := cfg.HeroOptions(); next != *hero {
			*hero = next
			changed = true
		}
	}
	if specials, ok := Resource[SpecialsOptions](app); ok {
		if next := cfg.SpecialsOptions(); next != *specials {
			*specials = next
			changed = true
		}
	}
	if !changed {
		log.Infof("config reloaded, scene unchanged")
		return nil
	}
	log.Infof("config reloaded, remounting scene")
	if app.scene == nil {
		return nil
	}
	return app.Remount()
}

func restartKeys(cur, next Config) []string {
	var keys []string
	if cur.Scene != next.Scene {
		keys = append(keys, "scene")
	}
	if cur.Frames != next.Frames {
		keys = append(keys, "frames")
	}
	if cur.Render != next.Render {
		keys = append(keys, "render")
	}
	return keys
}
