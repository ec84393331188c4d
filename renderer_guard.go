package heroscene

import (
	"fmt"
)

// ensureSingleRenderer enforces a single renderer invariant.
func ensureSingleRenderer(app *App, name RendererName) error {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	if app.renderer == nil {
		return nil
	}
	app.Logger().Errorf("Multiple renderers installed: %s and %s", app.rendererName, name)
	return fmt.Errorf("%w: %s and %s", ErrRendererInstalled, app.rendererName, name)
}
