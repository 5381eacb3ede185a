package gongo

// FastRandom is a Park-Miller "minimal standard" multiplicative LCG
// (multiplier 16807, modulus 2^31-1), split into 16/16-bit halves so
// the multiply never leaves 32-bit wraparound arithmetic. The exact
// sequence of NextUint32 outputs is part of this engine's public
// contract: playouts seeded with the same value must replay bit-for-bit
// identically on every platform.
type FastRandom struct {
	seed uint32
}

// NewFastRandom seeds a generator. Seed must be non-zero.
func NewFastRandom(seed uint32) *FastRandom {
	return &FastRandom{seed: seed}
}

func (r *FastRandom) NextUint32() uint32 {
	lo := uint32(16807) * (r.seed & 0xffff)
	hi := uint32(16807) * (r.seed >> 16)
	lo = lo + ((hi & 0x7fff) << 16)
	lo = lo + (hi >> 15)
	r.seed = (lo & 0x7fffffff) + (lo >> 31)
	return r.seed
}

const invMaxUint = 1.0 / float64(uint64(1)<<31)

// NextDouble draws a uniform value in [0, scale).
func (r *FastRandom) NextDouble(scale float64) float64 {
	s := r.NextUint32()
	return float64(s) * (invMaxUint * scale)
}
