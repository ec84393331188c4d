package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/feelfresh/heroscene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestRun_RendersFramesAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, "[render]\nwidth = 32\nheight = 18\ndpr = 1.0\n")
	snapPath := filepath.Join(dir, "snap.json")

	err := run(options{
		configPath: cfgPath,
		scene:      heroscene.SceneSpecials,
		frames:     3,
		outDir:     filepath.Join(dir, "frames"),
		snapshot:   snapPath,
	})
	require.NoError(t, err)

	frames, err := filepath.Glob(filepath.Join(dir, "frames", "frame_*.png"))
	require.NoError(t, err)
	assert.Len(t, frames, 3)

	snap, err := heroscene.LoadSnapshot(snapPath)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), snap.Frame)
	var desserts int
	for _, n := range snap.Nodes {
		if n.Geometry == "dodecahedron" {
			desserts++
		}
	}
	assert.Equal(t, 6, desserts)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	cfg, err := loadConfig(options{scene: heroscene.SceneSpecials, frames: 12, outDir: "out"})
	require.NoError(t, err)

	assert.Equal(t, heroscene.SceneSpecials, cfg.Scene)
	assert.Equal(t, uint64(12), cfg.Frames)
	assert.Equal(t, "out", cfg.Render.OutDir)

	_, err = loadConfig(options{scene: "menu"})
	assert.ErrorIs(t, err, heroscene.ErrInvalidConfig)
}

func TestRun_WatchNeedsConfig(t *testing.T) {
	assert.Error(t, run(options{watch: true, frames: 1}))
}
