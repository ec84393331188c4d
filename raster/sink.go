package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSink writes each frame to Dir as frame_NNNNN.png.
type PNGSink struct {
	Dir string
}

func (s PNGSink) WriteFrame(index uint64, img image.Image) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.Dir, fmt.Sprintf("frame_%05d.png", index)))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
