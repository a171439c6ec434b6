package signal

import "math/rand"

// Noise is a deterministic white noise source in [-1, 1].
type Noise struct {
	seed int64
	rng  *rand.Rand
}

// NewNoise creates a noise source with the given seed.
func NewNoise(seed int64) *Noise {
	return &Noise{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Process returns the next noise sample.
func (n *Noise) Process() float64 {
	return n.rng.Float64()*2 - 1
}

// ProcessBlock fills buf with noise.
func (n *Noise) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = n.Process()
	}
}

// Seed returns the seed the sequence restarts from.
func (n *Noise) Seed() int64 { return n.seed }

// Reset restarts the sequence from the seed.
func (n *Noise) Reset() {
	n.rng.Seed(n.seed)
}
