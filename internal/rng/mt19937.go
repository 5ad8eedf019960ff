package rng

// MT19937 is the 32-bit Mersenne Twister (Matsumoto & Nishimura, 1998).
// Both CPython's random module and NumPy's legacy RandomState are built on it;
// they differ only in how they seed it and how they turn words into variates.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

const (
	mtN         = 624
	mtM         = 397
	matrixA     = 0x9908b0df
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	arraySeed   = 19650218
	res53Scale  = 1.0 / 9007199254740992.0
	res53Factor = 67108864.0
)

// SeedInt seeds the state with init_genrand.
func (m *MT19937) SeedInt(s uint32) {
	m.mt[0] = s
	for i := 1; i < mtN; i++ {
		prev := m.mt[i-1]
		m.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.mti = mtN
}

// SeedArray seeds the state with init_by_array.
func (m *MT19937) SeedArray(key []uint32) {
	m.SeedInt(arraySeed)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := m.mt[i-1]
		m.mt[i] = (m.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := m.mt[i-1]
		m.mt[i] = (m.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
	}
	m.mt[0] = 0x80000000
	m.mti = mtN
}

// Uint32 returns the next tempered 32-bit word.
func (m *MT19937) Uint32() uint32 {
	if m.mti >= mtN {
		m.twist()
	}
	y := m.mt[m.mti]
	m.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision
// (genrand_res53).
func (m *MT19937) Float64() float64 {
	a := float64(m.Uint32() >> 5)
	b := float64(m.Uint32() >> 6)
	return (a*res53Factor + b) * res53Scale
}

func (m *MT19937) twist() {
	var kk int
	for kk = 0; kk < mtN-mtM; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+mtM] ^ (y >> 1) ^ mag01(y)
	}
	for ; kk < mtN-1; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01(y)
	}
	y := (m.mt[mtN-1] & upperMask) | (m.mt[0] & lowerMask)
	m.mt[mtN-1] = m.mt[mtM-1] ^ (y >> 1) ^ mag01(y)
	m.mti = 0
}

func mag01(y uint32) uint32 {
	if y&1 == 0 {
		return 0
	}
	return matrixA
}
