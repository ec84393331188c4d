package heroscene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrift_CarryFollowsModularFormula(t *testing.T) {
	// Binary-exact heights and step keep float32 arithmetic exact.
	initial := []mgl32.Vec3{{0.1, 0, -0.1}, {0, 0.5, 0}, {0, 1.875, 0}, {0, 1.25, 0}}
	ps := NewParticleSystemFrom(initial)

	const step = 0.25
	for n := 1; n <= 40; n++ {
		ps.Drift(step, 0, 2, WrapCarry)
		for i, p := range initial {
			want := math.Mod(float64(p.Y())+float64(n)*step, 2)
			assert.InDelta(t, want, ps.At(i).Y(), 1e-6, "particle %d after %d steps", i, n)
		}
	}
}

func TestDrift_CarryWithNonZeroLowerBound(t *testing.T) {
	initial := []mgl32.Vec3{{0, -0.5, 0}, {0, 0.75, 0}}
	ps := NewParticleSystemFrom(initial)

	const lo, hi, step = -1.0, 1.0, 0.25
	for n := 1; n <= 25; n++ {
		ps.Drift(step, lo, hi, WrapCarry)
		for i, p := range initial {
			want := math.Mod(float64(p.Y())-lo+float64(n)*step, hi-lo) + lo
			assert.InDelta(t, want, ps.At(i).Y(), 1e-6)
		}
	}
}

func TestDrift_UpperBoundResetsToLower(t *testing.T) {
	ps := NewParticleSystemFrom([]mgl32.Vec3{{0, 2, 0}, {0, 1.995, 0}})

	ps.Drift(0.01, 0, 2, WrapReset)

	assert.Equal(t, float32(0), ps.At(0).Y(), "particle exactly at the upper bound")
	assert.Equal(t, float32(0), ps.At(1).Y(), "particle stepping past the upper bound")
}

func TestDrift_NeverMovesHorizontally(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ps := NewParticleSystem(20, CenteredSpread(0.3, 0.3, 0, 2), rng)
	before := ps.Positions()

	for i := 0; i < 500; i++ {
		ps.Drift(0.01, 0, 2, WrapReset)
	}

	for i := range before {
		assert.Equal(t, before[i].X(), ps.At(i).X())
		assert.Equal(t, before[i].Z(), ps.At(i).Z())
	}
}

func TestDrift_CountIsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ps := NewParticleSystem(37, CenteredSpread(1, 1, 0, 2), rng)

	for i := 0; i < 1000; i++ {
		mode := WrapReset
		if i%2 == 1 {
			mode = WrapCarry
		}
		ps.Drift(0.013, 0, 2, mode)
		require.Equal(t, 37, ps.Len())
	}
	assert.Len(t, ps.Positions(), 37)
}

func TestDrift_MarksBufferChanged(t *testing.T) {
	ps := NewParticleSystemFrom([]mgl32.Vec3{{0, 0, 0}})
	ps.MarkUploaded()
	require.False(t, ps.NeedsUpdate)

	ps.Drift(0.01, 0, 2, WrapReset)

	assert.True(t, ps.NeedsUpdate)
	assert.Equal(t, uint64(1), ps.Version())
}

func TestDrift_DegenerateRangeIsNoop(t *testing.T) {
	ps := NewParticleSystemFrom([]mgl32.Vec3{{0, 1, 0}})
	ps.Drift(0.5, 2, 2, WrapReset)
	assert.Equal(t, float32(1), ps.At(0).Y())

	var nilSystem *ParticleSystem
	assert.NotPanics(t, func() { nilSystem.Drift(0.5, 0, 2, WrapReset) })
}

func TestSteamColumnStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	ps := NewParticleSystem(50, CenteredSpread(0.3, 0.3, 0, 2), rng)
	for i := 0; i < ps.Len(); i++ {
		y := ps.At(i).Y()
		require.True(t, y >= 0 && y < 2, "initial height %f out of range", y)
	}

	for _, mode := range []WrapMode{WrapReset, WrapCarry} {
		steam := NewParticleSystemFrom(ps.Positions())
		for step := 1; step <= 150; step++ {
			steam.Drift(0.01, 0, 2, mode)
			for i := 0; i < steam.Len(); i++ {
				y := steam.At(i).Y()
				if y < 0 || y >= 2 {
					t.Fatalf("%s: particle %d at %f after step %d", mode, i, y, step)
				}
			}
		}
		assert.Equal(t, 50, steam.Len())
	}
}

func TestNewParticleSystem_RespectsSpread(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	spread := Spread{Min: mgl32.Vec3{-5, -5, -5}, Max: mgl32.Vec3{5, 5, 5}}
	ps := NewParticleSystem(100, spread, rng)

	require.Equal(t, 100, ps.Len())
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, p[axis], float32(-5))
			assert.Less(t, p[axis], float32(5))
		}
	}
}
