package fixture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"market-fixtures/internal/model"
)

// MarketDataHeader is written verbatim ahead of the order rows.
var MarketDataHeader = []string{
	"# Order_Type Price Size",
	"# Order_Type: 1=Buy, 0=Sell",
}

// ParseError reports a malformed fixture row.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// EncodeMarketData writes the two header lines followed by one
// "<side> <price> <size>" row per order. Prices use two decimals.
func EncodeMarketData(w io.Writer, s *model.MarketSeries) error {
	if err := s.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, h := range MarketDataHeader {
		if _, err := bw.WriteString(h + "\n"); err != nil {
			return err
		}
	}

	cw := newWriter(bw)
	rec := make([]string, 3)
	for i := 0; i < s.Len(); i++ {
		rec[0] = strconv.Itoa(int(s.Sides[i]))
		rec[1] = FormatPrice(s.Prices[i])
		rec[2] = strconv.Itoa(s.Sizes[i])
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

func WriteMarketData(path string, s *model.MarketSeries) error {
	return writeFile(path, func(w io.Writer) error { return EncodeMarketData(w, s) })
}

// DecodeMarketData parses rows written by EncodeMarketData. Prices come back
// at the two-decimal precision stored in the file.
func DecodeMarketData(r io.Reader) (*model.MarketSeries, error) {
	cr := newReader(r, 3)
	s := &model.MarketSeries{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		side, err := model.ParseSide(rec[0])
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		price, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("price: %w", err)}
		}
		size, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("size: %w", err)}
		}
		s.Sides = append(s.Sides, side)
		s.Prices = append(s.Prices, price)
		s.Sizes = append(s.Sizes, size)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func ReadMarketData(path string) (*model.MarketSeries, error) {
	return readFile(path, DecodeMarketData)
}

func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
