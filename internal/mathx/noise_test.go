package mathx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoiseIsDeterministicPerSeed(t *testing.T) {
	a := NewNoise(7)
	b := NewNoise(7)
	c := NewNoise(8)

	same, diff := 0, 0
	for i := 0; i < 50; i++ {
		x, z := float64(i)*1.7, float64(i)*0.9
		require.Equal(t, a.At(x, z), b.At(x, z))
		if a.At(x, z) == c.At(x, z) {
			same++
		} else {
			diff++
		}
	}
	require.Greater(t, diff, same, "different seeds produce different fields")
}

func TestNoiseStaysInUnitRange(t *testing.T) {
	n := NewNoise(1)
	for i := 0; i < 200; i++ {
		v := n.At(float64(i)*0.37, float64(i)*1.13)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestLayeredNoiseStaysInUnitRange(t *testing.T) {
	n := NewNoise(1)
	for i := 0; i < 100; i++ {
		v := n.Layered(float64(i)*0.37, float64(i)*1.13, 4)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestVecHelpers(t *testing.T) {
	a := Vec3{X: 3, Y: 0, Z: 4}
	require.Equal(t, 5.0, a.Len())
	require.Equal(t, 5.0, a.LenXZ())
	require.InDelta(t, 1.0, a.Normalized().Len(), 1e-12)

	require.Equal(t, 5.0, DistXZ(Vec3{}, a))
	require.Equal(t, Vec3{X: 1.5, Z: 2}, Lerp(Vec3{}, a, 0.5))
	require.InDelta(t, 0.0, HeadingXZ(Vec3{Z: 1}), 1e-12)
}
