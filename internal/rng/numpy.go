package rng

import "math"

// NumPy reproduces numpy.random.RandomState (the legacy seeding API used by
// np.random.seed) for uniform, normal and log-normal draws.
type NumPy struct {
	mt       MT19937
	hasGauss bool
	gauss    float64
}

// NewNumPy returns a generator seeded the way np.random.seed(int) seeds it.
func NewNumPy(seed uint32) *NumPy {
	n := &NumPy{}
	n.Seed(seed)
	return n
}

// Seed resets the state with init_genrand and drops any cached variate.
func (n *NumPy) Seed(seed uint32) {
	n.mt.SeedInt(seed)
	n.hasGauss = false
	n.gauss = 0
}

// Float64 is np.random.random_sample().
func (n *NumPy) Float64() float64 {
	return n.mt.Float64()
}

// Gauss returns a standard normal variate using the polar Box-Muller method.
// Each accepted pair yields two variates; the second is cached for the next call.
func (n *NumPy) Gauss() float64 {
	if n.hasGauss {
		g := n.gauss
		n.hasGauss = false
		n.gauss = 0
		return g
	}
	var x1, x2, r2 float64
	for {
		x1 = 2.0*n.mt.Float64() - 1.0
		x2 = 2.0*n.mt.Float64() - 1.0
		r2 = x1*x1 + x2*x2
		if r2 < 1.0 && r2 != 0.0 {
			break
		}
	}
	f := math.Sqrt(-2.0 * math.Log(r2) / r2)
	n.gauss = f * x1
	n.hasGauss = true
	return f * x2
}

// Normal is np.random.normal(loc, scale).
func (n *NumPy) Normal(loc, scale float64) float64 {
	return loc + scale*n.Gauss()
}

// LogNormal is np.random.lognormal(mean, sigma).
func (n *NumPy) LogNormal(mean, sigma float64) float64 {
	return math.Exp(n.Normal(mean, sigma))
}
