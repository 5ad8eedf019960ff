package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"market-fixtures/internal/analysis"
	"market-fixtures/internal/config"
	"market-fixtures/internal/fixture"
	"market-fixtures/internal/synth"
)

// Demo:
// - Generate a short decision stream and market feed with the reference parameters
// - Write them where the fixture tests expect them
// - Print the first orders and both summaries to show how the stages fit together
func main() {
	outDir := flag.String("out", "testdata", "Directory for the demo fixtures")
	n := flag.Int("n", 100, "Number of decisions and orders")
	seedFlag := flag.Int64("seed", config.DefaultSeed, "Seed for every random stream (0 to 2^32-1)")
	show := flag.Int("show", 10, "Number of orders to print")
	flag.Parse()

	seed, err := config.SeedValue(seedFlag)
	if err != nil {
		panic(err)
	}

	engine := synth.New()

	dp := synth.DefaultDecisionParams()
	dp.Count = *n
	ds, err := engine.RunDecisions(dp, seed)
	if err != nil {
		panic(err)
	}
	decisionsPath := filepath.Join(*outDir, fmt.Sprintf("decisions_seed%d_n%d.txt", seed, *n))
	if err := fixture.WriteDecisions(decisionsPath, ds); err != nil {
		panic(err)
	}

	mp := synth.DefaultMarketParams()
	mp.Count = *n
	series, err := engine.RunSeeded(mp, seed)
	if err != nil {
		panic(err)
	}
	marketPath := filepath.Join(*outDir, fmt.Sprintf("market_seed%d_n%d.txt", seed, *n))
	if err := fixture.WriteMarketData(marketPath, series); err != nil {
		panic(err)
	}

	fmt.Printf("%-5s %-5s %-10s %-6s\n", "step", "side", "price", "size")
	for i := 0; i < *show && i < series.Len(); i++ {
		o := series.Order(i)
		fmt.Printf("%-5d %-5s %-10s %-6d\n", i, o.Side, fixture.FormatPrice(o.Price), o.Size)
	}
	fmt.Println()

	if err := analysis.WriteDecisionReport(os.Stdout, analysis.SummarizeDecisions(ds)); err != nil {
		panic(err)
	}
	if err := analysis.WriteMarketReport(os.Stdout, analysis.SummarizeMarket(series)); err != nil {
		panic(err)
	}
	fmt.Printf("\nWrote %s and %s\n", decisionsPath, marketPath)
}
