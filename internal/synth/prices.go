package synth

import "math"

// GeneratePrices simulates n steps of geometric Brownian motion:
//
//	dS = mu*S*dt + sigma*S*dW
//
// discretized with one standard-normal shock per step after the first.
// Each price is floored at p.Floor.
func GeneratePrices(src Gaussian, n int, p PriceParams) ([]float64, error) {
	if n <= 0 {
		return nil, errNonPositiveCount
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sqrtDt := math.Sqrt(p.Dt)
	prices := make([]float64, n)
	prices[0] = p.InitialPrice
	for t := 1; t < n; t++ {
		prev := prices[t-1]
		shock := src.Normal(0, 1) * sqrtDt
		drift := p.Mu * prev * p.Dt
		diffusion := p.Sigma * prev * shock
		prices[t] = math.Max(prev+drift+diffusion, p.Floor)
	}
	return prices, nil
}
