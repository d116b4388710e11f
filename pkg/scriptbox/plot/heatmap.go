package plot

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Heatmap draws an annotated integer matrix, rows top to bottom.
type Heatmap struct {
	Title  string
	XLabel string
	YLabel string
	XTicks []string
	YTicks []string
	Values [][]int
	Width  int
	Height int
}

// Render draws the heatmap with a white-to-blue color scale.
func (hm Heatmap) Render() (image.Image, error) {
	rows := len(hm.Values)
	if rows == 0 || len(hm.Values[0]) == 0 {
		return nil, fmt.Errorf("%w: heatmap has no cells", internalerr.ErrEmptyDataset)
	}
	cols := len(hm.Values[0])
	for i, row := range hm.Values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: heatmap row %d has %d cells, want %d", internalerr.ErrInvalidInput, i, len(row), cols)
		}
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}

	w, h := hm.Width, hm.Height
	if w <= 0 {
		w = 600
	}
	if h <= 0 {
		h = 500
	}
	left, right, top, bottom := 130.0, 30.0, 60.0, 80.0

	lo, hi := hm.Values[0][0], hm.Values[0][0]
	for _, row := range hm.Values {
		for _, v := range row {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	cellW := (float64(w) - left - right) / float64(cols)
	cellH := (float64(h) - top - bottom) / float64(rows)

	dc.SetFontFace(face(bold, 16))
	for r, row := range hm.Values {
		for c, v := range row {
			x := left + float64(c)*cellW
			y := top + float64(r)*cellH
			t := 0.0
			if hi > lo {
				t = float64(v-lo) / float64(hi-lo)
			}
			dc.SetColor(Blues(t))
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()
			if t > 0.5 {
				dc.SetColor(color.White)
			} else {
				dc.SetColor(color.Black)
			}
			dc.DrawStringAnchored(strconv.Itoa(v), x+cellW/2, y+cellH/2, 0.5, 0.5)
		}
	}

	dc.SetColor(color.Black)
	dc.SetFontFace(face(regular, 12))
	for c, label := range hm.XTicks {
		if c >= cols {
			break
		}
		dc.DrawStringAnchored(label, left+(float64(c)+0.5)*cellW, top+float64(rows)*cellH+16, 0.5, 0.5)
	}
	for r, label := range hm.YTicks {
		if r >= rows {
			break
		}
		dc.DrawStringAnchored(label, left-8, top+(float64(r)+0.5)*cellH, 1, 0.5)
	}

	dc.SetFontFace(face(bold, 16))
	dc.DrawStringAnchored(hm.Title, float64(w)/2, top/2, 0.5, 0.5)
	dc.SetFontFace(face(regular, 13))
	dc.DrawStringAnchored(hm.XLabel, left+(float64(w)-left-right)/2, float64(h)-bottom/3, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 18, top+(float64(h)-top-bottom)/2)
	dc.DrawStringAnchored(hm.YLabel, 18, top+(float64(h)-top-bottom)/2, 0.5, 0.5)
	dc.Pop()

	return dc.Image(), nil
}

var (
	bluesLight = color.RGBA{R: 0xf7, G: 0xfb, B: 0xff, A: 0xff}
	bluesDark  = color.RGBA{R: 0x08, G: 0x30, B: 0x6b, A: 0xff}
)

// Blues maps t in [0,1] onto a light-to-dark blue ramp.
func Blues(t float64) color.RGBA {
	t = max(0, min(1, t))
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.RGBA{
		R: lerp(bluesLight.R, bluesDark.R),
		G: lerp(bluesLight.G, bluesDark.G),
		B: lerp(bluesLight.B, bluesDark.B),
		A: 0xff,
	}
}
