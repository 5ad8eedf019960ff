package model

import "fmt"

// Side is the direction of a synthetic order.
// Keep these values stable; they are the order-type column of market_data.txt.
type Side uint8

const (
	SideSell Side = 0
	SideBuy  Side = 1
)

func SideFromBuy(buy bool) Side {
	if buy {
		return SideBuy
	}
	return SideSell
}

func ParseSide(s string) (Side, error) {
	switch s {
	case "1":
		return SideBuy, nil
	case "0":
		return SideSell, nil
	default:
		return 0, fmt.Errorf("invalid order type %q (want 0 or 1)", s)
	}
}

func (s Side) IsBuy() bool { return s == SideBuy }

func (s Side) String() string {
	if s == SideBuy {
		return "BUY"
	}
	return "SELL"
}
