package model

import "fmt"

// Decision is one submit/cancel choice consumed by the order-book timing harness.
type Decision uint8

const (
	DecisionCancel Decision = 0
	DecisionSubmit Decision = 1
)

func ParseDecision(s string) (Decision, error) {
	switch s {
	case "1":
		return DecisionSubmit, nil
	case "0":
		return DecisionCancel, nil
	default:
		return 0, fmt.Errorf("invalid decision %q (want 0 or 1)", s)
	}
}

// CountSubmits returns how many decisions are submits.
func CountSubmits(ds []Decision) int {
	n := 0
	for _, d := range ds {
		if d == DecisionSubmit {
			n++
		}
	}
	return n
}
