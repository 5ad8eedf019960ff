package rng

import "math/bits"

// Python reproduces the draw semantics of CPython's random.Random so that
// fixtures generated here match those produced by the reference scripts.
type Python struct {
	mt MT19937
}

// NewPython returns a generator seeded the way random.seed(int) seeds it.
func NewPython(seed uint64) *Python {
	p := &Python{}
	p.Seed(seed)
	return p
}

// Seed feeds the seed's 32-bit words, least significant first, to
// init_by_array. Zero is seeded as a single zero word.
func (p *Python) Seed(seed uint64) {
	key := []uint32{uint32(seed)}
	if hi := uint32(seed >> 32); hi != 0 {
		key = append(key, hi)
	}
	p.mt.SeedArray(key)
}

// Float64 is random.random().
func (p *Python) Float64() float64 {
	return p.mt.Float64()
}

// GetRandBits is random.getrandbits(k) for 0 < k <= 32.
func (p *Python) GetRandBits(k int) uint32 {
	if k <= 0 || k > 32 {
		panic("rng: GetRandBits requires 0 < k <= 32")
	}
	return p.mt.Uint32() >> (32 - uint(k))
}

// IntN returns a value in [0, n) by rejection sampling over bit_length(n)
// bits, which is what random.choice and random.randrange do.
func (p *Python) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN requires n > 0")
	}
	k := bits.Len(uint(n))
	if k > 32 {
		panic("rng: IntN limited to 32-bit bounds")
	}
	r := int(p.GetRandBits(k))
	for r >= n {
		r = int(p.GetRandBits(k))
	}
	return r
}
