package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"market-fixtures/internal/synth"

	"gopkg.in/yaml.v3"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed = 42

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load market parameters from a separate YAML (e.g. examples/markets/*.yaml).
	// If both MarketFile and Market are provided, Market overrides MarketFile.
	MarketFile string          `yaml:"market_file"`
	LogLevel   string          `yaml:"log_level"`
	Decisions  DecisionsConfig `yaml:"decisions"`
	Market     MarketConfig    `yaml:"market"`
	Charts     ChartsConfig    `yaml:"charts"`
}

type DecisionsConfig struct {
	Count             int     `yaml:"count"`
	SubmitProbability float64 `yaml:"submit_probability"`
	Seed              *int64  `yaml:"seed"`
	Out               string  `yaml:"out"`
}

type MarketConfig struct {
	Count int         `yaml:"count"`
	Seed  *int64      `yaml:"seed"`
	Out   string      `yaml:"out"`
	Price PriceConfig `yaml:"price"`
	Flow  FlowConfig  `yaml:"flow"`
	Size  SizeConfig  `yaml:"size"`
}

type PriceConfig struct {
	InitialPrice float64 `yaml:"initial_price"`
	Mu           float64 `yaml:"mu"`
	Sigma        float64 `yaml:"sigma"`
	Dt           float64 `yaml:"dt"`
	Floor        float64 `yaml:"floor"`
}

// FlowConfig and SizeConfig use pointers for fields where zero is a
// meaningful setting, so an explicit 0 overrides the default.
type FlowConfig struct {
	MoveThreshold  *float64 `yaml:"move_threshold"`
	DropBuyProb    float64  `yaml:"drop_buy_prob"`
	RiseBuyProb    float64  `yaml:"rise_buy_prob"`
	NeutralBuyProb float64  `yaml:"neutral_buy_prob"`
	RegimePeriod   int      `yaml:"regime_period"`
	RegimeOnSteps  *int     `yaml:"regime_on_steps"`
	TrendLookback  int      `yaml:"trend_lookback"`
	TrendNudge     *float64 `yaml:"trend_nudge"`
	MinProb        *float64 `yaml:"min_prob"`
	MaxProb        float64  `yaml:"max_prob"`
}

type SizeConfig struct {
	Mean    *float64 `yaml:"mean"`
	Sigma   float64  `yaml:"sigma"`
	MinSize int      `yaml:"min_size"`
}

type ChartsConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	DPI     int    `yaml:"dpi"`
}

// Default returns the configuration that reproduces the reference fixtures.
func Default() *Config {
	seed := int64(DefaultSeed)
	enabled := true
	d := synth.DefaultDecisionParams()
	m := synth.DefaultMarketParams()
	return &Config{
		LogLevel: "info",
		Decisions: DecisionsConfig{
			Count:             d.Count,
			SubmitProbability: d.SubmitProbability,
			Seed:              &seed,
			Out:               "decisions.txt",
		},
		Market: MarketConfig{
			Count: m.Count,
			Seed:  &seed,
			Out:   "market_data.txt",
			Price: PriceConfig(m.Price),
			Flow:  flowConfig(m.Flow),
			Size:  sizeConfig(m.Size),
		},
		Charts: ChartsConfig{Enabled: &enabled, Dir: ".", DPI: 100},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c = Merge(Default(), c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not apply defaults or validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// If market_file is set, load it and merge in any explicit overrides from c.Market.
	if c.MarketFile != "" {
		marketPath := c.MarketFile
		if !filepath.IsAbs(marketPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), marketPath)
			if _, err := os.Stat(cand); err == nil {
				marketPath = cand
			}
		}
		loaded, err := loadMarketFile(marketPath)
		if err != nil {
			return nil, err
		}
		c.Market = MergeMarket(loaded, c.Market)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := SeedValue(c.Decisions.Seed); err != nil {
		return fmt.Errorf("decisions.seed: %w", err)
	}
	if err := c.Decisions.ToSynthParams().Validate(); err != nil {
		return fmt.Errorf("decisions config invalid: %w", err)
	}
	if _, err := SeedValue(c.Market.Seed); err != nil {
		return fmt.Errorf("market.seed: %w", err)
	}
	if err := c.Market.ToSynthParams().Validate(); err != nil {
		return fmt.Errorf("market config invalid: %w", err)
	}
	if c.Charts.DPI < 0 {
		return errors.New("charts.dpi must be >= 0")
	}
	return nil
}

// ChartsEnabled reports whether charts should be rendered; unset means yes.
func (c ChartsConfig) ChartsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// SeedValue converts a configured seed to the 32-bit range both generators
// accept. A nil seed means DefaultSeed.
func SeedValue(seed *int64) (uint32, error) {
	if seed == nil {
		return DefaultSeed, nil
	}
	if *seed < 0 || *seed > math.MaxUint32 {
		return 0, fmt.Errorf("seed %d out of range [0, %d]", *seed, uint32(math.MaxUint32))
	}
	return uint32(*seed), nil
}

func (d DecisionsConfig) ToSynthParams() synth.DecisionParams {
	return synth.DecisionParams{Count: d.Count, SubmitProbability: d.SubmitProbability}
}

func (m MarketConfig) ToSynthParams() synth.MarketParams {
	return synth.MarketParams{
		Count: m.Count,
		Price: synth.PriceParams(m.Price),
		Flow:  m.Flow.toSynth(),
		Size:  m.Size.toSynth(),
	}
}

func flowConfig(p synth.FlowParams) FlowConfig {
	return FlowConfig{
		MoveThreshold:  &p.MoveThreshold,
		DropBuyProb:    p.DropBuyProb,
		RiseBuyProb:    p.RiseBuyProb,
		NeutralBuyProb: p.NeutralBuyProb,
		RegimePeriod:   p.RegimePeriod,
		RegimeOnSteps:  &p.RegimeOnSteps,
		TrendLookback:  p.TrendLookback,
		TrendNudge:     &p.TrendNudge,
		MinProb:        &p.MinProb,
		MaxProb:        p.MaxProb,
	}
}

// toSynth treats unset pointer fields as zero.
func (f FlowConfig) toSynth() synth.FlowParams {
	return synth.FlowParams{
		MoveThreshold:  deref(f.MoveThreshold),
		DropBuyProb:    f.DropBuyProb,
		RiseBuyProb:    f.RiseBuyProb,
		NeutralBuyProb: f.NeutralBuyProb,
		RegimePeriod:   f.RegimePeriod,
		RegimeOnSteps:  deref(f.RegimeOnSteps),
		TrendLookback:  f.TrendLookback,
		TrendNudge:     deref(f.TrendNudge),
		MinProb:        deref(f.MinProb),
		MaxProb:        f.MaxProb,
	}
}

func sizeConfig(p synth.SizeParams) SizeConfig {
	return SizeConfig{Mean: &p.Mean, Sigma: p.Sigma, MinSize: p.MinSize}
}

func (s SizeConfig) toSynth() synth.SizeParams {
	return synth.SizeParams{Mean: deref(s.Mean), Sigma: s.Sigma, MinSize: s.MinSize}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

type marketFileWrapper struct {
	Market MarketConfig `yaml:"market"`
}

func loadMarketFile(path string) (MarketConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MarketConfig{}, err
	}
	var w marketFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return MarketConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Market, nil
}

// Merge overlays non-zero fields from override onto base and returns a new Config.
func Merge(base, override *Config) *Config {
	out := *base
	if override == nil {
		return &out
	}
	if override.MarketFile != "" {
		out.MarketFile = override.MarketFile
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	out.Decisions = MergeDecisions(base.Decisions, override.Decisions)
	out.Market = MergeMarket(base.Market, override.Market)
	if override.Charts.Enabled != nil {
		out.Charts.Enabled = override.Charts.Enabled
	}
	if override.Charts.Dir != "" {
		out.Charts.Dir = override.Charts.Dir
	}
	if override.Charts.DPI != 0 {
		out.Charts.DPI = override.Charts.DPI
	}
	return &out
}

func MergeDecisions(base, override DecisionsConfig) DecisionsConfig {
	out := base
	if override.Count != 0 {
		out.Count = override.Count
	}
	if override.SubmitProbability != 0 {
		out.SubmitProbability = override.SubmitProbability
	}
	if override.Seed != nil {
		out.Seed = override.Seed
	}
	if override.Out != "" {
		out.Out = override.Out
	}
	return out
}

// MergeMarket overlays non-zero fields from override onto base.
// This is used when loading a market file and then applying overrides from the
// config, CLI flags or an API request.
func MergeMarket(base, override MarketConfig) MarketConfig {
	out := base
	if override.Count != 0 {
		out.Count = override.Count
	}
	if override.Seed != nil {
		out.Seed = override.Seed
	}
	if override.Out != "" {
		out.Out = override.Out
	}

	p := override.Price
	if p.InitialPrice != 0 {
		out.Price.InitialPrice = p.InitialPrice
	}
	// Note: mu is allowed to be 0 and is 0 by default, so a zero override is a no-op.
	if p.Mu != 0 {
		out.Price.Mu = p.Mu
	}
	if p.Sigma != 0 {
		out.Price.Sigma = p.Sigma
	}
	if p.Dt != 0 {
		out.Price.Dt = p.Dt
	}
	if p.Floor != 0 {
		out.Price.Floor = p.Floor
	}

	f := override.Flow
	if f.MoveThreshold != nil {
		out.Flow.MoveThreshold = f.MoveThreshold
	}
	if f.DropBuyProb != 0 {
		out.Flow.DropBuyProb = f.DropBuyProb
	}
	if f.RiseBuyProb != 0 {
		out.Flow.RiseBuyProb = f.RiseBuyProb
	}
	if f.NeutralBuyProb != 0 {
		out.Flow.NeutralBuyProb = f.NeutralBuyProb
	}
	if f.RegimePeriod != 0 {
		out.Flow.RegimePeriod = f.RegimePeriod
	}
	if f.RegimeOnSteps != nil {
		out.Flow.RegimeOnSteps = f.RegimeOnSteps
	}
	if f.TrendLookback != 0 {
		out.Flow.TrendLookback = f.TrendLookback
	}
	if f.TrendNudge != nil {
		out.Flow.TrendNudge = f.TrendNudge
	}
	if f.MinProb != nil {
		out.Flow.MinProb = f.MinProb
	}
	if f.MaxProb != 0 {
		out.Flow.MaxProb = f.MaxProb
	}

	s := override.Size
	if s.Mean != nil {
		out.Size.Mean = s.Mean
	}
	if s.Sigma != 0 {
		out.Size.Sigma = s.Sigma
	}
	if s.MinSize != 0 {
		out.Size.MinSize = s.MinSize
	}
	return out
}
