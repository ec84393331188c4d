package heroscene

import (
	"fmt"
)

// Mount composes the scene, attaches the renderer and registers every
// animator with the loop. Elapsed time restarts at zero on the next frame.
func (app *App) Mount() error {
	if app.scene != nil {
		return ErrAlreadyMounted
	}
	if app.compose == nil {
		return ErrNoScene
	}

	scene := app.compose()
	scene.UpdateWorldTransforms()

	if app.renderer != nil {
		if err := app.renderer.Attach(scene); err != nil {
			return fmt.Errorf("attach %s renderer: %w", app.rendererName, err)
		}
	}

	app.scene = scene
	app.rebase = true
	app.loop.ResetElapsed()
	for _, a := range scene.Animators() {
		app.handles = append(app.handles, app.loop.Add(Update, animatorName(a), a.Animate))
	}
	app.handles = append(app.handles, app.loop.Add(PostUpdate, "world-transforms", func(float32) {
		scene.UpdateWorldTransforms()
	}))
	if app.renderer != nil {
		app.handles = append(app.handles, app.addRenderCallback())
	}

	app.Logger().Infof("Scene mounted: %d animators, %d meshes, %d particle systems, %d lights",
		len(scene.Animators()), len(scene.Meshes()), len(scene.Points()), len(scene.Lights()))
	return nil
}

// Unmount removes every callback the scene registered and drops it.
func (app *App) Unmount() error {
	if app.scene == nil {
		return ErrNotMounted
	}
	for _, h := range app.handles {
		app.loop.Remove(h)
	}
	app.handles = app.handles[:0]
	if app.renderer != nil {
		app.renderer.Detach()
	}
	app.scene = nil
	app.Logger().Infof("Scene unmounted")
	return nil
}

func (app *App) Remount() error {
	if err := app.Unmount(); err != nil {
		return err
	}
	return app.Mount()
}

func animatorName(a Animator) string {
	return fmt.Sprintf("%T", a)
}
