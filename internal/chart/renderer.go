// Package chart renders diagnostic figures for a generated market series.
// Nothing downstream consumes these images; they exist for human inspection.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"market-fixtures/internal/model"
)

// Kind names one figure.
type Kind string

const (
	MarketVisualization Kind = "market_visualization"
	PriceAnalysis       Kind = "price_analysis"
)

// Kinds lists every figure in the order they are written.
var Kinds = []Kind{MarketVisualization, PriceAnalysis}

func (k Kind) FileName() string { return string(k) + ".png" }

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind %q", s)
}

// Renderer draws one figure for a series.
type Renderer interface {
	Render(kind Kind, s *model.MarketSeries, w io.Writer) error
}

// Nop renders nothing.
type Nop struct{}

func (Nop) Render(Kind, *model.MarketSeries, io.Writer) error { return nil }

// WriteAll renders every Kind into dir and returns the written paths.
func WriteAll(r Renderer, s *model.MarketSeries, dir string) ([]string, error) {
	if _, ok := r.(Nop); ok || r == nil {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		path := filepath.Join(dir, k.FileName())
		if err := renderFile(r, k, s, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderFile(r Renderer, k Kind, s *model.MarketSeries, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := r.Render(k, s, f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
