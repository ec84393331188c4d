package heroscene

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrNotMounted        = errors.New("scene not mounted")
	ErrAlreadyMounted    = errors.New("scene already mounted")
	ErrNoScene           = errors.New("no scene composer installed")
	ErrRendererInstalled = errors.New("a different renderer is already installed")
	ErrUnknownGeometry   = errors.New("unknown geometry kind")
	ErrBadColor          = errors.New("bad color")
)
