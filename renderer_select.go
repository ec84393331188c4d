package heroscene

// RendererName identifies a concrete renderer.
type RendererName string

// Frame is what a renderer receives on every tick.
type Frame struct {
	Index   uint64
	Elapsed float32
}

// Renderer is the adapter between a scene tree and a drawing surface.
// Attach walks the tree once; Render draws the current state.
type Renderer interface {
	Attach(scene *Scene) error
	Render(frame Frame) error
	Detach()
}

// UseRenderer installs the app's renderer. If the scene is already mounted
// the renderer is attached right away.
// Usage:
//
//	app.UseRenderer("raster", raster.New(opts))
func (app *App) UseRenderer(name RendererName, r Renderer) error {
	if err := ensureSingleRenderer(app, name); err != nil {
		return err
	}
	app.renderer = r
	app.rendererName = name
	app.Logger().Infof("Renderer selected: %s", name)
	if app.scene != nil {
		if err := r.Attach(app.scene); err != nil {
			return err
		}
		app.handles = append(app.handles, app.addRenderCallback())
	}
	return nil
}

func (app *App) addRenderCallback() Handle {
	r := app.renderer
	return app.loop.Add(Render, string(app.rendererName), func(elapsed float32) {
		frame := Frame{Index: app.loop.Frames(), Elapsed: elapsed}
		if err := r.Render(frame); err != nil && app.renderErr == nil {
			app.Logger().Errorf("render frame %d: %v", frame.Index, err)
			app.renderErr = err
		}
	})
}
