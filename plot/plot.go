package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/internal/fileout"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const minPanelHeight = 80

var (
	// ErrEmptySignal is returned when a panel has no samples to draw.
	ErrEmptySignal = errors.New("plot: empty signal")

	gridColor = drawing.Color{R: 220, G: 220, B: 220, A: 255}
)

// Config describes the canvas layout.
type Config struct {
	Width  int
	Height int
	// TitleHeight is the height of the banner above the panels.
	TitleHeight int
	// Split is the height of the upper panel; the lower panel takes the rest.
	Split int

	Title           string
	// Font sizes are in points at 96 DPI.
	TitleFontSize   float64
	CaptionFontSize float64
	XLabel          string
	YLabel          string

	YMin float64
	YMax float64
	// Ticks is the number of tick labels per axis.
	Ticks int

	// Footer is an optional one-line annotation at the bottom-left corner.
	Footer string
}

// DefaultConfig returns the 1920x1080 layout with an even panel split.
func DefaultConfig() Config {
	return Config{
		Width:           1920,
		Height:          1080,
		TitleHeight:     80,
		Split:           540,
		Title:           "Raw Signal Vs. Lowpass Filter",
		TitleFontSize:   45,
		CaptionFontSize: 30,
		XLabel:          "Sample Index",
		YLabel:          "Value",
		YMin:            -1,
		YMax:            1,
		Ticks:           10,
	}
}

// Validate reports layout parameters that cannot produce a chart.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("plot: canvas size must be > 0: %dx%d", c.Width, c.Height)
	}
	if c.TitleHeight < 0 {
		return fmt.Errorf("plot: title height must be >= 0: %d", c.TitleHeight)
	}
	if c.Split < minPanelHeight {
		return fmt.Errorf("plot: upper panel height must be >= %d: %d", minPanelHeight, c.Split)
	}
	if lower := c.Height - c.TitleHeight - c.Split; lower < minPanelHeight {
		return fmt.Errorf("plot: lower panel height must be >= %d: %d", minPanelHeight, lower)
	}
	if !(c.YMin < c.YMax) {
		return fmt.Errorf("plot: y range must be increasing: [%f, %f]", c.YMin, c.YMax)
	}
	if c.Ticks < 2 {
		return fmt.Errorf("plot: ticks must be >= 2: %d", c.Ticks)
	}
	return nil
}

// Panel is one captioned line series.
type Panel struct {
	Caption string
	Signal  []float64
	Color   drawing.Color
}

// Render draws upper and lower into a single PNG written to w.
func Render(w io.Writer, cfg Config, upper, lower Panel) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(upper.Signal) == 0 || len(lower.Signal) == 0 {
		return ErrEmptySignal
	}

	canvas := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if cfg.TitleHeight > 0 && cfg.Title != "" {
		banner, err := renderBanner(cfg)
		if err != nil {
			return err
		}
		paste(canvas, banner, 0)
	}

	top, err := renderPanel(cfg, upper, cfg.Split)
	if err != nil {
		return fmt.Errorf("plot: draw %q: %w", upper.Caption, err)
	}
	paste(canvas, top, cfg.TitleHeight)

	bottom, err := renderPanel(cfg, lower, cfg.Height-cfg.TitleHeight-cfg.Split)
	if err != nil {
		return fmt.Errorf("plot: draw %q: %w", lower.Caption, err)
	}
	paste(canvas, bottom, cfg.TitleHeight+cfg.Split)

	if cfg.Footer != "" {
		drawFooter(canvas, cfg.Footer)
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("plot: encode png: %w", err)
	}
	return nil
}

// RenderFile renders into path. The image is fully encoded and written to a
// temporary sibling before it replaces path, so a failure leaves any existing
// file or directory at path untouched.
func RenderFile(path string, cfg Config, upper, lower Panel) error {
	var buf bytes.Buffer
	if err := Render(&buf, cfg, upper, lower); err != nil {
		return err
	}

	if err := fileout.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("plot: write %s: %w", path, err)
	}
	return nil
}

func paste(dst *image.RGBA, src image.Image, y int) {
	b := src.Bounds()
	r := image.Rect(0, y, b.Dx(), y+b.Dy())
	draw.Draw(dst, r, src, b.Min, draw.Over)
}

func renderBanner(cfg Config) (image.Image, error) {
	r, err := chart.PNG(cfg.Width, cfg.TitleHeight)
	if err != nil {
		return nil, fmt.Errorf("plot: banner renderer: %w", err)
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("plot: load font: %w", err)
	}

	r.SetFont(f)
	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(cfg.TitleFontSize)

	box := r.MeasureText(cfg.Title)
	x := (cfg.Width - box.Width()) / 2
	y := (cfg.TitleHeight + box.Height()) / 2
	r.Text(cfg.Title, x, y)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("plot: render banner: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("plot: decode banner: %w", err)
	}
	return img, nil
}

func renderPanel(cfg Config, p Panel, height int) (image.Image, error) {
	if len(p.Signal) == 0 {
		return nil, ErrEmptySignal
	}

	xs, ys := seriesValues(p.Signal, cfg.YMin, cfg.YMax)
	xMax := xs[len(xs)-1]

	xTicks := indexTicks(xMax, cfg.Ticks)
	yTicks := valueTicks(cfg.YMin, cfg.YMax, cfg.Ticks)
	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1}

	ch := chart.Chart{
		Title:      p.Caption,
		TitleStyle: chart.Style{FontSize: cfg.CaptionFontSize},
		Width:      cfg.Width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 70, Left: 24, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           cfg.XLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: xMax},
			Ticks:          xTicks,
			GridMajorStyle: grid,
			GridLines:      gridLines(xTicks),
		},
		YAxis: chart.YAxis{
			Name:           cfg.YLabel,
			Range:          &chart.ContinuousRange{Min: cfg.YMin, Max: cfg.YMax},
			Ticks:          yTicks,
			GridMajorStyle: grid,
			GridLines:      gridLines(yTicks),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    p.Caption,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: p.Color, StrokeWidth: 2},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// seriesValues returns index/value pairs with values clipped to [lo, hi].
// A single sample is widened to two points so the x range is not empty.
func seriesValues(signal []float64, lo, hi float64) (xs, ys []float64) {
	n := len(signal)
	if n == 1 {
		v := core.Clamp(signal[0], lo, hi)
		return []float64{0, 1}, []float64{v, v}
	}

	xs = make([]float64, n)
	ys = make([]float64, n)
	for i, v := range signal {
		xs[i] = float64(i)
		ys[i] = core.Clamp(v, lo, hi)
	}
	return xs, ys
}

// indexTicks spreads count integer labels over [0, max].
func indexTicks(max float64, count int) []chart.Tick {
	ticks := make([]chart.Tick, 0, count)
	last := -1
	for i := 0; i < count; i++ {
		v := int(float64(i)*max/float64(count-1) + 0.5)
		if v == last {
			continue
		}
		last = v
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

// valueTicks spreads count labels evenly over [lo, hi], formatted with two decimals.
func valueTicks(lo, hi float64, count int) []chart.Tick {
	ticks := make([]chart.Tick, count)
	step := (hi - lo) / float64(count-1)
	for i := range ticks {
		v := lo + float64(i)*step
		if i == count-1 {
			v = hi
		}
		ticks[i] = chart.Tick{Value: v, Label: fmt.Sprintf("%.2f", v)}
	}
	return ticks
}

func gridLines(ticks []chart.Tick) []chart.GridLine {
	lines := make([]chart.GridLine, len(ticks))
	for i, t := range ticks {
		lines[i] = chart.GridLine{Value: t.Value}
	}
	return lines
}

func drawFooter(dst *image.RGBA, text string) {
	face := basicfont.Face7x13
	b := dst.Bounds()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 90, G: 90, B: 90, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(b.Max.Y - 6)},
	}
	d.DrawString(text)
}
