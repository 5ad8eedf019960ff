package synth

import (
	"fmt"
	"math"
)

// GenerateSizes draws n log-normal order sizes, rounds half to even and
// floors each at p.MinSize. A draw above MaxSize is an error rather than a
// silently wrapped integer.
func GenerateSizes(src Gaussian, n int, p SizeParams) ([]int, error) {
	if n <= 0 {
		return nil, errNonPositiveCount
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sizes := make([]int, n)
	for i := range sizes {
		v := math.RoundToEven(src.LogNormal(p.Mean, p.Sigma))
		if !(v <= MaxSize) {
			return nil, fmt.Errorf("size[%d]=%v exceeds %d", i, v, MaxSize)
		}
		sz := int(v)
		if sz < p.MinSize {
			sz = p.MinSize
		}
		sizes[i] = sz
	}
	return sizes, nil
}
