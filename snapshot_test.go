package heroscene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_SaveAndLoad(t *testing.T) {
	scene := HeroScene(DefaultHeroOptions())
	for _, a := range scene.Animators() {
		a.Animate(1.5)
	}
	scene.UpdateWorldTransforms()

	snap := TakeSnapshot(scene, 90, 1.5)

	var steam *NodeData
	for i := range snap.Nodes {
		if snap.Nodes[i].Name == "steam" {
			steam = &snap.Nodes[i]
		}
	}
	require.NotNil(t, steam)
	assert.Equal(t, "points", steam.Kind)
	assert.Len(t, steam.Particles, 50)
	assert.Equal(t, "root", snap.Nodes[0].Name)

	testFile := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, SaveSnapshot(snap, testFile))

	loaded, err := LoadSnapshot(testFile)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), loaded.Frame)
	assert.Equal(t, float32(1.5), loaded.Elapsed)
	require.Len(t, loaded.Nodes, len(snap.Nodes))
	for i := range snap.Nodes {
		assert.Equal(t, snap.Nodes[i].ID, loaded.Nodes[i].ID)
		assert.Equal(t, snap.Nodes[i].Position, loaded.Nodes[i].Position)
		assert.Equal(t, snap.Nodes[i].Geometry, loaded.Nodes[i].Geometry)
	}
}

func TestSnapshot_MeshGeometryAndLights(t *testing.T) {
	scene := HeroScene(DefaultHeroOptions())
	scene.UpdateWorldTransforms()

	snap := TakeSnapshot(scene, 0, 0)

	kinds := map[string]string{}
	for _, n := range snap.Nodes {
		kinds[n.Name] = n.Geometry + n.Light
	}
	assert.Equal(t, "cylinder", kinds["cup-body"])
	assert.Equal(t, "torus", kinds["cup-handle"])
	assert.Equal(t, "icosahedron", kinds["pastry-a"])
	assert.Equal(t, "sphere", kinds["fruit-c"])
	assert.Equal(t, "point", kinds["fill"])
}

func TestLoadSnapshot_UnknownGeometry(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(testFile, []byte(`{"nodes":[{"name":"pot","kind":"mesh","geometry":"teapot"}]}`), 0644))

	_, err := LoadSnapshot(testFile)

	assert.ErrorIs(t, err, ErrUnknownGeometry)
}
