package mathx

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Noise is seeded, layered value noise over a 2-D integer lattice.
// Sampling is stateless: the same (seed, x, z) always yields the same
// value, so scatter and wander decisions stay reproducible across runs.
type Noise struct {
	seed uint64
}

func NewNoise(seed uint64) *Noise {
	return &Noise{seed: seed}
}

// lattice hashes an integer lattice point into [0,1).
func (n *Noise) lattice(x, z int64) float64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], n.seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(x))
	binary.LittleEndian.PutUint64(buf[16:], uint64(z))
	h := xxhash.Sum64(buf[:])
	return float64(h>>11) / float64(1<<53)
}

// At samples smoothed value noise at (x, z), returning [0,1).
func (n *Noise) At(x, z float64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	tx := smooth(x - x0)
	tz := smooth(z - z0)

	ix, iz := int64(x0), int64(z0)
	v00 := n.lattice(ix, iz)
	v10 := n.lattice(ix+1, iz)
	v01 := n.lattice(ix, iz+1)
	v11 := n.lattice(ix+1, iz+1)

	a := v00 + (v10-v00)*tx
	b := v01 + (v11-v01)*tx
	return a + (b-a)*tz
}

// Layered sums octaves of At with halving amplitude and doubling
// frequency, normalized back to [0,1).
func (n *Noise) Layered(x, z float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	sum := 0.0
	amp := 1.0
	freq := 1.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += n.At(x*freq, z*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}
