package heroscene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

type NodeData struct {
	ID        NodeID       `json:"id"`
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Depth     int          `json:"depth"`
	Position  mgl32.Vec3   `json:"position"`
	Rotation  mgl32.Quat   `json:"rotation"`
	Geometry  string       `json:"geometry,omitempty"`
	Color     string       `json:"color,omitempty"`
	Light     string       `json:"light,omitempty"`
	Particles []mgl32.Vec3 `json:"particles,omitempty"`
}

// SnapshotData is the state of a scene at one frame, in world space except
// for particles, which stay in their system's local space.
type SnapshotData struct {
	Frame   uint64     `json:"frame"`
	Elapsed float32    `json:"elapsed"`
	Nodes   []NodeData `json:"nodes"`
}

func TakeSnapshot(scene *Scene, frame uint64, elapsed float32) SnapshotData {
	snap := SnapshotData{Frame: frame, Elapsed: elapsed}
	scene.Walk(func(n Node, depth int) bool {
		world := n.World()
		data := NodeData{
			ID:       n.ID(),
			Name:     n.Name(),
			Kind:     n.Kind().String(),
			Depth:    depth,
			Position: world.Col(3).Vec3(),
			Rotation: mgl32.Mat4ToQuat(world).Normalize(),
		}
		switch node := n.(type) {
		case *MeshNode:
			data.Geometry = node.Geometry.Kind().String()
			data.Color = node.Material.BaseColor().Hex()
		case *PointsNode:
			data.Color = node.Material.Color.Hex()
			data.Particles = node.Particles.Positions()
		case *LightNode:
			data.Light = node.Light.Type.String()
			data.Color = node.Light.Color.Hex()
		}
		snap.Nodes = append(snap.Nodes, data)
		return true
	})
	return snap
}

func SaveSnapshot(snap SnapshotData, filename string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadSnapshot reads a snapshot and checks that every mesh names a known
// geometry.
func LoadSnapshot(filename string) (SnapshotData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return SnapshotData{}, err
	}
	var snap SnapshotData
	if err := json.Unmarshal(data, &snap); err != nil {
		return SnapshotData{}, fmt.Errorf("decode snapshot %s: %w", filename, err)
	}
	for _, n := range snap.Nodes {
		if n.Kind != KindMesh.String() {
			continue
		}
		if _, err := ParseGeometryKind(n.Geometry); err != nil {
			return SnapshotData{}, fmt.Errorf("snapshot node %s: %w", n.Name, err)
		}
	}
	return snap, nil
}
