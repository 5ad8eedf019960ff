package synth

import "market-fixtures/internal/model"

// GenerateDecisions draws p.Count independent Bernoulli(p.SubmitProbability)
// outcomes in order. One uniform draw is consumed per decision.
func GenerateDecisions(src Uniform, p DecisionParams) ([]model.Decision, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]model.Decision, p.Count)
	for i := range out {
		if src.Float64() < p.SubmitProbability {
			out[i] = model.DecisionSubmit
		} else {
			out[i] = model.DecisionCancel
		}
	}
	return out, nil
}
