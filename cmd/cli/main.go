package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"market-fixtures/internal/analysis"
	"market-fixtures/internal/chart"
	"market-fixtures/internal/config"
	"market-fixtures/internal/fixture"
	"market-fixtures/internal/synth"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "decisions":
		cmdDecisions(os.Args[2:])
	case "market":
		cmdMarket(os.Args[2:])
	case "stats":
		cmdStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli decisions [--config examples/config.yaml] [--out decisions.txt] [--n 100000] [--seed 42] [--p 0.6]")
	fmt.Println("  cli market [--config examples/config.yaml] [--out market_data.txt] [--n 100000] [--seed 42] [--charts .] [--no-charts]")
	fmt.Println("  cli stats --market market_data.txt | --decisions decisions.txt")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - decisions.txt holds one 0 (cancel) or 1 (submit) per line")
	fmt.Println("  - market_data.txt holds '<side> <price> <size>' rows after a two-line header")
	fmt.Println("  - with no flags the outputs are the seed 42 reference fixtures")
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(lvl)
}

// loadConfig returns the defaults, or the file at path merged over them.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("loading config")
	}
	return cfg
}

// setFlags reports which flags were given explicitly.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func seedOf(s *int64) uint32 {
	seed, err := config.SeedValue(s)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid seed")
	}
	return seed
}

func cmdDecisions(args []string) {
	fs := flag.NewFlagSet("decisions", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Output path (default from config: decisions.txt)")
	n := fs.Int("n", 0, "Number of decisions (default from config: 100000)")
	seed := fs.Int64("seed", config.DefaultSeed, "Seed for the uniform stream")
	p := fs.Float64("p", 0.6, "Submit probability")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	setupLogging(cfg.LogLevel)

	set := setFlags(fs)
	override := config.DecisionsConfig{Count: *n, Out: *outPath}
	if set["seed"] {
		override.Seed = seed
	}
	dc := config.MergeDecisions(cfg.Decisions, override)
	if set["p"] {
		dc.SubmitProbability = *p
	}

	params := dc.ToSynthParams()
	s := seedOf(dc.Seed)
	log.Info().Int("count", params.Count).Float64("p", params.SubmitProbability).Uint32("seed", s).Msg("generating decisions")

	ds, err := synth.New().RunDecisions(params, s)
	if err != nil {
		log.Fatal().Err(err).Msg("generating decisions")
	}
	if err := fixture.WriteDecisions(dc.Out, ds); err != nil {
		log.Fatal().Err(err).Str("path", dc.Out).Msg("writing decisions")
	}
	log.Info().Str("path", dc.Out).Int("rows", len(ds)).Msg("wrote decisions")

	if err := analysis.WriteDecisionReport(os.Stdout, analysis.SummarizeDecisions(ds)); err != nil {
		log.Fatal().Err(err).Msg("printing report")
	}
}

func cmdMarket(args []string) {
	fs := flag.NewFlagSet("market", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Output path (default from config: market_data.txt)")
	n := fs.Int("n", 0, "Number of orders (default from config: 100000)")
	seed := fs.Int64("seed", config.DefaultSeed, "Seed for both random streams")
	chartDir := fs.String("charts", "", "Directory for chart images (default from config: .)")
	noCharts := fs.Bool("no-charts", false, "Skip chart rendering")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	setupLogging(cfg.LogLevel)

	override := config.MarketConfig{Count: *n, Out: *outPath}
	if setFlags(fs)["seed"] {
		override.Seed = seed
	}
	mc := config.MergeMarket(cfg.Market, override)

	params := mc.ToSynthParams()
	if err := params.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid market parameters")
	}
	s := seedOf(mc.Seed)

	log.Info().
		Int("count", params.Count).
		Float64("initial_price", params.Price.InitialPrice).
		Float64("sigma", params.Price.Sigma).
		Uint32("seed", s).
		Msg("generating price path, order flow and sizes")
	start := time.Now()
	series, err := synth.New().RunSeeded(params, s)
	if err != nil {
		log.Fatal().Err(err).Msg("generating market data")
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("generation done")

	if err := fixture.WriteMarketData(mc.Out, series); err != nil {
		log.Fatal().Err(err).Str("path", mc.Out).Msg("writing market data")
	}
	log.Info().Str("path", mc.Out).Int("rows", series.Len()).Msg("wrote market data")

	if err := analysis.WriteMarketReport(os.Stdout, analysis.SummarizeMarket(series)); err != nil {
		log.Fatal().Err(err).Msg("printing report")
	}

	if *noCharts || !cfg.Charts.ChartsEnabled() {
		return
	}
	dir := cfg.Charts.Dir
	if *chartDir != "" {
		dir = *chartDir
	}
	paths, err := chart.WriteAll(chart.NewPlotRenderer(cfg.Charts.DPI), series, dir)
	if err != nil {
		// The data file is already on disk; a chart failure does not undo it.
		log.Warn().Err(err).Str("dir", dir).Msg("rendering charts")
	}
	for _, p := range paths {
		log.Info().Str("path", filepath.Clean(p)).Msg("wrote chart")
	}
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	marketPath := fs.String("market", "", "Path to a market_data.txt fixture")
	decisionsPath := fs.String("decisions", "", "Path to a decisions.txt fixture")
	_ = fs.Parse(args)

	setupLogging("info")

	if *marketPath == "" && *decisionsPath == "" {
		fmt.Println("--market or --decisions is required")
		os.Exit(2)
	}

	if *decisionsPath != "" {
		ds, err := fixture.ReadDecisions(*decisionsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *decisionsPath).Msg("reading decisions")
		}
		if err := analysis.WriteDecisionReport(os.Stdout, analysis.SummarizeDecisions(ds)); err != nil {
			log.Fatal().Err(err).Msg("printing report")
		}
	}
	if *marketPath != "" {
		series, err := fixture.ReadMarketData(*marketPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *marketPath).Msg("reading market data")
		}
		if err := analysis.WriteMarketReport(os.Stdout, analysis.SummarizeMarket(series)); err != nil {
			log.Fatal().Err(err).Msg("printing report")
		}
	}
}
