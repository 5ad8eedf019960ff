package analysis

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rule = strings.Repeat("=", 60)

// WriteMarketReport prints the human-readable statistics block.
func WriteMarketReport(w io.Writer, s MarketSummary) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nMarket Data Statistics:\n%s\n", rule, rule)
	p.Fprintf(&b, "Total orders: %d\n", s.Count)
	p.Fprintf(&b, "  Buy orders:  %d (%.2f%%)\n", s.Buys, s.BuyPct)
	p.Fprintf(&b, "  Sell orders: %d (%.2f%%)\n", s.Sells, s.SellPct)
	fmt.Fprintf(&b, "\nPrice Statistics:\n")
	fmt.Fprintf(&b, "  Initial price:  $%.2f\n", s.InitialPrice)
	fmt.Fprintf(&b, "  Final price:    $%.2f\n", s.FinalPrice)
	fmt.Fprintf(&b, "  Average price:  $%.2f\n", s.MeanPrice)
	fmt.Fprintf(&b, "  Min price:      $%.2f\n", s.MinPrice)
	fmt.Fprintf(&b, "  Max price:      $%.2f\n", s.MaxPrice)
	fmt.Fprintf(&b, "  Volatility:     $%.2f\n", s.PriceStdDev)
	fmt.Fprintf(&b, "  Total return:   %.2f%%\n", s.TotalReturnPct)
	fmt.Fprintf(&b, "\nOrder Size Statistics:\n")
	fmt.Fprintf(&b, "  Average size:   %.0f shares\n", s.MeanSize)
	fmt.Fprintf(&b, "  Median size:    %.0f shares\n", s.MedianSize)
	fmt.Fprintf(&b, "  Max size:       %d shares\n", s.MaxSize)
	fmt.Fprintf(&b, "%s\n", rule)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDecisionReport prints submit/cancel counts.
func WriteDecisionReport(w io.Writer, s DecisionSummary) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	p.Fprintf(&b, "Generated %d decisions:\n", s.Count)
	p.Fprintf(&b, "  1s (submits): %d (%.2f%%)\n", s.Submits, s.SubmitPct)
	p.Fprintf(&b, "  0s (cancels): %d (%.2f%%)\n", s.Cancels, s.CancelPct)
	_, err := io.WriteString(w, b.String())
	return err
}
