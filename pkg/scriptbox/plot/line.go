package plot

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Point is one sample on a time axis.
type Point struct {
	X time.Time
	Y float64
}

// LineChart draws a single series against time.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	Grid   bool
	Points []Point

	// TimeFormat labels the x ticks; defaults to "15:04".
	TimeFormat string
}

var (
	seriesColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	gridColor   = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	axisColor   = color.Black
)

const (
	marginLeft   = 80.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 70.0
)

// Render draws the chart. Points must be in ascending X order.
func (c LineChart) Render() (image.Image, error) {
	if len(c.Points) == 0 {
		return nil, fmt.Errorf("%w: line chart has no points", internalerr.ErrEmptyDataset)
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 1200
	}
	if h <= 0 {
		h = 600
	}
	layout := c.TimeFormat
	if layout == "" {
		layout = "15:04"
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	plotW := float64(w) - marginLeft - marginRight
	plotH := float64(h) - marginTop - marginBottom

	x0, x1 := c.Points[0].X, c.Points[len(c.Points)-1].X
	span := x1.Sub(x0).Seconds()
	lo, hi := yBounds(c.Points)
	yTicks := niceTicks(lo, hi, 6)
	lo, hi = yTicks[0], yTicks[len(yTicks)-1]

	px := func(t time.Time) float64 {
		if span == 0 {
			return marginLeft + plotW/2
		}
		return marginLeft + t.Sub(x0).Seconds()/span*plotW
	}
	py := func(v float64) float64 {
		return marginTop + (hi-v)/(hi-lo)*plotH
	}

	dc.SetFontFace(face(regular, 12))
	dc.SetLineWidth(1)
	for _, v := range yTicks {
		y := py(v)
		if c.Grid {
			dc.SetColor(gridColor)
			dc.DrawLine(marginLeft, y, marginLeft+plotW, y)
			dc.Stroke()
		}
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(formatTick(v), marginLeft-8, y, 1, 0.5)
	}
	for _, t := range timeTicks(c.Points, 8) {
		x := px(t)
		if c.Grid {
			dc.SetColor(gridColor)
			dc.DrawLine(x, marginTop, x, marginTop+plotH)
			dc.Stroke()
		}
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(t.Format(layout), x, marginTop+plotH+16, 0.5, 0.5)
	}

	dc.SetColor(axisColor)
	dc.DrawRectangle(marginLeft, marginTop, plotW, plotH)
	dc.Stroke()

	dc.SetColor(seriesColor)
	dc.SetLineWidth(2)
	for i, p := range c.Points {
		if i == 0 {
			dc.MoveTo(px(p.X), py(p.Y))
			continue
		}
		dc.LineTo(px(p.X), py(p.Y))
	}
	if len(c.Points) == 1 {
		dc.DrawCircle(px(c.Points[0].X), py(c.Points[0].Y), 3)
		dc.Fill()
	} else {
		dc.Stroke()
	}

	dc.SetColor(axisColor)
	dc.SetFontFace(face(bold, 18))
	dc.DrawStringAnchored(c.Title, float64(w)/2, marginTop/2, 0.5, 0.5)
	dc.SetFontFace(face(regular, 14))
	dc.DrawStringAnchored(c.XLabel, marginLeft+plotW/2, float64(h)-marginBottom/3, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 20, marginTop+plotH/2)
	dc.DrawStringAnchored(c.YLabel, 20, marginTop+plotH/2, 0.5, 0.5)
	dc.Pop()

	return dc.Image(), nil
}

func yBounds(points []Point) (float64, float64) {
	lo, hi := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Y)
		hi = math.Max(hi, p.Y)
	}
	if lo == hi {
		lo--
		hi++
	}
	return lo, hi
}

// niceTicks returns evenly spaced round values covering [lo, hi].
func niceTicks(lo, hi float64, want int) []float64 {
	if want < 2 {
		want = 2
	}
	step := niceStep((hi - lo) / float64(want-1))
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	var ticks []float64
	for v := start; v <= end+step/2; v += step {
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return ticks
}

func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	frac := raw / exp
	switch {
	case frac <= 1:
		return exp
	case frac <= 2:
		return 2 * exp
	case frac <= 5:
		return 5 * exp
	default:
		return 10 * exp
	}
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// timeTicks picks up to max sample times spread evenly across the series.
func timeTicks(points []Point, max int) []time.Time {
	if len(points) <= max {
		out := make([]time.Time, len(points))
		for i, p := range points {
			out[i] = p.X
		}
		return out
	}
	out := make([]time.Time, 0, max)
	stride := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		out = append(out, points[int(math.Round(float64(i)*stride))].X)
	}
	return out
}
