package model

import (
	"errors"
	"fmt"
)

// MinPrice is the floor applied to every synthetic price.
const MinPrice = 0.01

var (
	ErrEmptySeries      = errors.New("market series is empty")
	ErrMisalignedSeries = errors.New("market series slices differ in length")
)

// MarketSeries holds the three index-aligned outputs of the market generator.
// Prices[i], Sides[i] and Sizes[i] together describe order i.
type MarketSeries struct {
	Prices []float64
	Sides  []Side
	Sizes  []int
}

// Order is one row of market_data.txt.
type Order struct {
	Side  Side
	Price float64
	Size  int
}

func (s *MarketSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Prices)
}

func (s *MarketSeries) Order(i int) Order {
	return Order{Side: s.Sides[i], Price: s.Prices[i], Size: s.Sizes[i]}
}

// Orders materializes the series as a slice of rows.
func (s *MarketSeries) Orders() []Order {
	out := make([]Order, s.Len())
	for i := range out {
		out[i] = s.Order(i)
	}
	return out
}

func (s *MarketSeries) Validate() error {
	if s == nil || len(s.Prices) == 0 {
		return ErrEmptySeries
	}
	if len(s.Sides) != len(s.Prices) || len(s.Sizes) != len(s.Prices) {
		return fmt.Errorf("%w: prices=%d sides=%d sizes=%d",
			ErrMisalignedSeries, len(s.Prices), len(s.Sides), len(s.Sizes))
	}
	for i, p := range s.Prices {
		if !(p >= MinPrice) {
			return fmt.Errorf("price[%d]=%v below floor %v", i, p, MinPrice)
		}
	}
	for i, sz := range s.Sizes {
		if sz < 1 {
			return fmt.Errorf("size[%d]=%d must be >= 1", i, sz)
		}
	}
	return nil
}

// BuyCount returns how many orders are buys.
func (s *MarketSeries) BuyCount() int {
	n := 0
	for _, sd := range s.Sides {
		if sd.IsBuy() {
			n++
		}
	}
	return n
}
