package chart

import (
	"fmt"
	"image/color"
	"io"

	"market-fixtures/internal/analysis"
	"market-fixtures/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	blue      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red       = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	green     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	darkGreen = color.RGBA{G: 100, A: 255}
	orange    = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	orangeFog = color.RGBA{R: 255, G: 127, B: 14, A: 77}
	purple    = color.RGBA{R: 128, B: 128, A: 255}
	gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	black     = color.RGBA{A: 180}
	skyBlue   = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	coral     = color.RGBA{R: 240, G: 128, B: 128, A: 255}
)

var dashed = []vg.Length{vg.Points(4), vg.Points(3)}

// PlotRenderer draws figures with gonum/plot and encodes them as PNG.
type PlotRenderer struct {
	DPI int
	// SampleSteps is how many leading steps get buy/sell markers.
	SampleSteps int
	// DetailSteps is the length of the head/tail zoom panels.
	DetailSteps int
	// Window is the rolling window for mean, volatility and buy ratio.
	Window int
	Bins   int
}

func NewPlotRenderer(dpi int) *PlotRenderer {
	if dpi <= 0 {
		dpi = 100
	}
	return &PlotRenderer{
		DPI:         dpi,
		SampleSteps: 5000,
		DetailSteps: 10000,
		Window:      1000,
		Bins:        100,
	}
}

func (r *PlotRenderer) Render(kind Kind, s *model.MarketSeries, w io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	var (
		grid          [][]*plot.Plot
		width, height vg.Length
		err           error
	)
	switch kind {
	case MarketVisualization:
		grid, err = r.marketVisualization(s)
		width, height = 16*vg.Inch, 12*vg.Inch
	case PriceAnalysis:
		grid, err = r.priceAnalysis(s)
		width, height = 16*vg.Inch, 10*vg.Inch
	default:
		return fmt.Errorf("unknown chart kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return encodeGrid(w, grid, width, height, r.DPI)
}

// marketVisualization is the 3x2 overview figure.
func (r *PlotRenderer) marketVisualization(s *model.MarketSeries) ([][]*plot.Plot, error) {
	prices := s.Prices
	initial := prices[0]
	n := len(prices)

	trace := newPlot("Stock Price Movement (Geometric Brownian Motion)", "Time Step", "Price ($)")
	if err := addLine(trace, indexed(prices, 0), blue, vg.Points(0.5), ""); err != nil {
		return nil, err
	}
	if err := addLine(trace, flat(0, float64(n-1), initial), red, vg.Points(1), fmt.Sprintf("Initial: $%.2f", initial), dashed...); err != nil {
		return nil, err
	}

	sample := min(r.SampleSteps, n)
	signals := newPlot(fmt.Sprintf("Price with Buy/Sell Signals (First %d orders)", sample), "Time Step", "Price ($)")
	if err := addLine(signals, indexed(prices[:sample], 0), black, vg.Points(1), "Price"); err != nil {
		return nil, err
	}
	var buys, sells plotter.XYs
	for i := 0; i < sample; i++ {
		pt := plotter.XY{X: float64(i), Y: prices[i]}
		if s.Sides[i].IsBuy() {
			buys = append(buys, pt)
		} else {
			sells = append(sells, pt)
		}
	}
	if err := addScatter(signals, buys, green, draw.TriangleGlyph{}, "Buy"); err != nil {
		return nil, err
	}
	if err := addScatter(signals, sells, red, draw.BoxGlyph{}, "Sell"); err != nil {
		return nil, err
	}

	meanPrice := stat.Mean(prices, nil)
	dist := newPlot("Price Distribution", "Price ($)", "Frequency")
	top, err := addHist(dist, prices, r.Bins, skyBlue)
	if err != nil {
		return nil, err
	}
	if err := addLine(dist, upright(meanPrice, top), red, vg.Points(2), fmt.Sprintf("Mean: $%.2f", meanPrice), dashed...); err != nil {
		return nil, err
	}

	rolling := newPlot(fmt.Sprintf("Rolling Mean and Volatility (Window=%d)", r.Window), "Time Step", "Price ($)")
	if mean := analysis.RollingMean(prices, r.Window); mean != nil {
		std := analysis.RollingStd(prices, r.Window)
		if err := addBand(rolling, mean, std, r.Window-1, orangeFog, "±1 Std Dev"); err != nil {
			return nil, err
		}
		if err := addLine(rolling, indexed(mean, r.Window-1), orange, vg.Points(1.5), fmt.Sprintf("%d-step Moving Average", r.Window)); err != nil {
			return nil, err
		}
	}

	ratio := newPlot(fmt.Sprintf("Buy Order Percentage (Rolling %d-step window)", r.Window), "Time Step", "Buy Orders (%)")
	if buyRatio := analysis.RollingBuyRatio(s.Sides, r.Window); buyRatio != nil {
		pct := make([]float64, len(buyRatio))
		for i, v := range buyRatio {
			pct[i] = v * 100
		}
		if err := addLine(ratio, indexed(pct, r.Window-1), purple, vg.Points(1), ""); err != nil {
			return nil, err
		}
	}
	if err := addLine(ratio, flat(0, float64(n-1), 50), gray, vg.Points(1), "", dashed...); err != nil {
		return nil, err
	}
	ratio.Y.Min, ratio.Y.Max = 0, 100

	sizes := make([]float64, len(s.Sizes))
	for i, sz := range s.Sizes {
		sizes[i] = float64(sz)
	}
	p99 := analysis.Percentile(sizes, 0.99)
	var visible []float64
	for _, v := range sizes {
		if v <= p99 {
			visible = append(visible, v)
		}
	}
	meanSize := stat.Mean(sizes, nil)
	medianSize := analysis.Percentile(sizes, 0.5)
	sizeDist := newPlot("Order Size Distribution (Log-Normal)", "Shares", "Frequency")
	top, err = addHist(sizeDist, visible, r.Bins, coral)
	if err != nil {
		return nil, err
	}
	if err := addLine(sizeDist, upright(meanSize, top), red, vg.Points(2), fmt.Sprintf("Mean: %.0f", meanSize), dashed...); err != nil {
		return nil, err
	}
	if err := addLine(sizeDist, upright(medianSize, top), blue, vg.Points(2), fmt.Sprintf("Median: %.0f", medianSize), dashed...); err != nil {
		return nil, err
	}
	sizeDist.X.Min, sizeDist.X.Max = 0, p99

	return [][]*plot.Plot{
		{trace, signals},
		{dist, rolling},
		{ratio, sizeDist},
	}, nil
}

// priceAnalysis is the 2x2 price-action figure.
func (r *PlotRenderer) priceAnalysis(s *model.MarketSeries) ([][]*plot.Plot, error) {
	prices := s.Prices
	n := len(prices)
	detail := min(r.DetailSteps, n)

	head := newPlot(fmt.Sprintf("Price Movement (First %d steps)", detail), "Time Step", "Price ($)")
	if err := addLine(head, indexed(prices[:detail], 0), blue, vg.Points(0.8), ""); err != nil {
		return nil, err
	}

	tail := newPlot(fmt.Sprintf("Price Movement (Last %d steps)", detail), "Time Step", "Price ($)")
	if err := addLine(tail, indexed(prices[n-detail:], n-detail), red, vg.Points(0.8), ""); err != nil {
		return nil, err
	}

	returns := newPlot("Returns Distribution", "Return (%)", "Frequency")
	top, err := addHist(returns, analysis.Returns(prices), r.Bins, green)
	if err != nil {
		return nil, err
	}
	if err := addLine(returns, upright(0, top), red, vg.Points(2), "", dashed...); err != nil {
		return nil, err
	}

	cumulative := newPlot("Cumulative Returns", "Time Step", "Cumulative Return (%)")
	if err := addLine(cumulative, indexed(analysis.CumulativeReturns(prices, prices[0]), 0), darkGreen, vg.Points(1), ""); err != nil {
		return nil, err
	}
	if err := addLine(cumulative, flat(0, float64(n-1), 0), red, vg.Points(1), "", dashed...); err != nil {
		return nil, err
	}

	return [][]*plot.Plot{
		{head, tail},
		{returns, cumulative},
	}, nil
}

func encodeGrid(w io.Writer, grid [][]*plot.Plot, width, height vg.Length, dpi int) error {
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(grid),
		Cols:      len(grid[0]),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 3,
		PadBottom: vg.Millimeter * 3,
		PadLeft:   vg.Millimeter * 3,
		PadRight:  vg.Millimeter * 3,
	}
	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		for j := range grid[i] {
			grid[i][j].Draw(canvases[i][j])
		}
	}
	_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// indexed pairs ys with x = offset, offset+1, ...
func indexed(ys []float64, offset int) plotter.XYs {
	xys := make(plotter.XYs, len(ys))
	for i, y := range ys {
		xys[i] = plotter.XY{X: float64(i + offset), Y: y}
	}
	return xys
}

func flat(x0, x1, y float64) plotter.XYs {
	return plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}}
}

func upright(x, top float64) plotter.XYs {
	return plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}}
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, width vg.Length, legend string, dashes ...vg.Length) error {
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = width
	l.Dashes = dashes
	p.Add(l)
	if legend != "" {
		p.Legend.Add(legend, l)
	}
	return nil
}

func addScatter(p *plot.Plot, xys plotter.XYs, c color.Color, shape draw.GlyphDrawer, legend string) error {
	if len(xys) == 0 {
		return nil
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Shape = shape
	sc.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(sc)
	p.Legend.Add(legend, sc)
	return nil
}

// addHist adds a histogram and returns the tallest bin so reference lines can
// span it. Degenerate inputs leave the panel empty.
func addHist(p *plot.Plot, vals []float64, bins int, fill color.Color) (float64, error) {
	if len(vals) < 2 || floats.Min(vals) == floats.Max(vals) {
		return 0, nil
	}
	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return 0, err
	}
	h.FillColor = fill
	h.LineStyle.Width = vg.Points(0.3)
	p.Add(h)

	top := 0.0
	for _, b := range h.Bins {
		top = max(top, b.Weight)
	}
	return top, nil
}

// addBand shades mean±std, aligned to x = offset, offset+1, ...
func addBand(p *plot.Plot, mean, std []float64, offset int, fill color.Color, legend string) error {
	pts := make(plotter.XYs, 0, 2*len(mean))
	for i := range mean {
		pts = append(pts, plotter.XY{X: float64(i + offset), Y: mean[i] + std[i]})
	}
	for i := len(mean) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: float64(i + offset), Y: mean[i] - std[i]})
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return err
	}
	poly.Color = fill
	poly.LineStyle.Width = 0
	p.Add(poly)
	p.Legend.Add(legend, poly)
	return nil
}
