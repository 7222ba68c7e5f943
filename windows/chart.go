// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"gsdash/dataset"
)

// Chart plotting area geometry. Labels and ticks live in the margins.
const (
	chartWidth   float32 = 560
	chartHeight  float32 = 320
	marginLeft   float32 = 64
	marginRight  float32 = 16
	marginTop    float32 = 28
	marginBottom float32 = 36
	yTicks               = 4
)

// seriesPalette colors scatter points per category.
var seriesPalette = []color.Color{
	color.NRGBA{R: 0x00, G: 0x89, B: 0x7b, A: 0xff}, // teal
	color.NRGBA{R: 0xef, G: 0x6c, B: 0x00, A: 0xff}, // orange
	color.NRGBA{R: 0x5e, G: 0x35, B: 0xb1, A: 0xff}, // purple
	color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}, // red
	color.NRGBA{R: 0x15, G: 0x65, B: 0xc0, A: 0xff}, // blue
	color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}, // green
}

var (
	axisColor = color.NRGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}
	gridColor = color.NRGBA{R: 0x90, G: 0x90, B: 0x90, A: 0x40}
	textColor = color.NRGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xff}
)

// chartCanvas accumulates positioned canvas objects for one chart.
type chartCanvas struct {
	objects []fyne.CanvasObject
	minY    float64
	maxY    float64
}

func newChartCanvas(minY, maxY float64) *chartCanvas {
	if minY == maxY {
		// Degenerate range, widen so scaling stays finite.
		minY -= 1
		maxY += 1
	}
	return &chartCanvas{minY: minY, maxY: maxY}
}

// x maps a fraction of the plotting width to a canvas coordinate.
func (cc *chartCanvas) x(frac float64) float32 {
	return marginLeft + float32(frac)*(chartWidth-marginLeft-marginRight)
}

// y maps a data value to a canvas coordinate (inverted axis).
func (cc *chartCanvas) y(val float64) float32 {
	frac := (val - cc.minY) / (cc.maxY - cc.minY)
	return chartHeight - marginBottom - float32(frac)*(chartHeight-marginTop-marginBottom)
}

func (cc *chartCanvas) addLine(x1, y1, x2, y2 float32, col color.Color, width float32) {
	line := canvas.NewLine(col)
	line.StrokeWidth = width
	line.Position1 = fyne.NewPos(x1, y1)
	line.Position2 = fyne.NewPos(x2, y2)
	cc.objects = append(cc.objects, line)
}

func (cc *chartCanvas) addDot(x, y float32, col color.Color, radius float32) {
	dot := canvas.NewCircle(col)
	dot.Move(fyne.NewPos(x-radius, y-radius))
	dot.Resize(fyne.NewSize(radius*2, radius*2))
	cc.objects = append(cc.objects, dot)
}

func (cc *chartCanvas) addRect(x, y, w, h float32, col color.Color) {
	rect := canvas.NewRectangle(col)
	rect.Move(fyne.NewPos(x, y))
	rect.Resize(fyne.NewSize(w, h))
	cc.objects = append(cc.objects, rect)
}

func (cc *chartCanvas) addText(x, y float32, text string, size float32) {
	t := canvas.NewText(text, textColor)
	t.TextSize = size
	t.Move(fyne.NewPos(x, y))
	cc.objects = append(cc.objects, t)
}

// drawAxes draws the x/y axis lines, horizontal grid lines and y tick labels.
func (cc *chartCanvas) drawAxes() {
	cc.addLine(marginLeft, marginTop, marginLeft, chartHeight-marginBottom, axisColor, 1)
	cc.addLine(marginLeft, chartHeight-marginBottom, chartWidth-marginRight, chartHeight-marginBottom, axisColor, 1)

	for i := 0; i <= yTicks; i++ {
		val := cc.minY + (cc.maxY-cc.minY)*float64(i)/yTicks
		y := cc.y(val)
		if i > 0 {
			cc.addLine(marginLeft, y, chartWidth-marginRight, y, gridColor, 1)
		}
		cc.addText(2, y-7, compactNumber(val), 10)
	}
}

// finish wraps the accumulated objects into a fixed-size card.
func (cc *chartCanvas) finish(title string) fyne.CanvasObject {
	plot := container.NewWithoutLayout(cc.objects...)
	sized := container.NewGridWrap(fyne.NewSize(chartWidth, chartHeight), plot)
	return widget.NewCard("", title, sized)
}

// compactNumber renders an axis label, abbreviating large magnitudes.
func compactNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case abs == math.Trunc(abs):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func floatRange(data []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, f := range data {
		min = math.Min(min, f)
		max = math.Max(max, f)
	}
	if math.IsInf(min, 1) {
		return 0, 1
	}
	return min, max
}

// NewLineChart plots a numeric series over the row index, with markers.
func NewLineChart(title string, ys []float64) fyne.CanvasObject {
	minY, maxY := floatRange(ys)
	cc := newChartCanvas(math.Min(minY, 0), maxY)
	cc.drawAxes()

	lineColor := seriesPalette[0]
	step := 1.0
	if len(ys) > 1 {
		step = 1.0 / float64(len(ys)-1)
	}
	for i := range ys {
		x := cc.x(float64(i) * step)
		y := cc.y(ys[i])
		if i > 0 {
			px := cc.x(float64(i-1) * step)
			py := cc.y(ys[i-1])
			cc.addLine(px, py, x, y, lineColor, 2)
		}
		cc.addDot(x, y, lineColor, 3)
	}
	return cc.finish(title)
}

// NewBarChart plots grouped sums as vertical bars with category labels.
func NewBarChart(title string, groups []dataset.GroupRow) fyne.CanvasObject {
	data := make([]float64, len(groups))
	for i, g := range groups {
		data[i] = g.Sum
	}
	minY, maxY := floatRange(data)
	cc := newChartCanvas(math.Min(minY, 0), maxY)
	cc.drawAxes()

	barColor := seriesPalette[0]
	n := len(groups)
	slot := 1.0 / float64(n)
	for i, g := range groups {
		center := cc.x(slot * (float64(i) + 0.5))
		width := float32(slot*0.6) * (chartWidth - marginLeft - marginRight)
		top := cc.y(g.Sum)
		base := cc.y(math.Max(cc.minY, 0))
		if top > base {
			top, base = base, top
		}
		cc.addRect(center-width/2, top, width, base-top, barColor)
		cc.addText(center-width/2, chartHeight-marginBottom+4, truncateLabel(g.Category, 10), 10)
	}
	return cc.finish(title)
}

// NewScatterChart plots x against y, colored by an optional category per
// point. Point i is skipped when either coordinate is missing.
func NewScatterChart(title string, xs, ys []float64, categories []string) fyne.CanvasObject {
	minX, maxX := floatRange(xs)
	minY, maxY := floatRange(ys)
	cc := newChartCanvas(minY, maxY)
	cc.drawAxes()

	spanX := maxX - minX
	if spanX == 0 {
		spanX = 1
	}

	colorFor := categoryColors(categories)
	for i := range xs {
		if i >= len(ys) {
			break
		}
		col := seriesPalette[0]
		if categories != nil && i < len(categories) {
			col = colorFor[categories[i]]
		}
		cc.addDot(cc.x((xs[i]-minX)/spanX), cc.y(ys[i]), col, 4)
	}
	return cc.finish(title)
}

// categoryColors assigns palette colors to categories in encounter order.
func categoryColors(categories []string) map[string]color.Color {
	assigned := make(map[string]color.Color)
	for _, c := range categories {
		if _, ok := assigned[c]; !ok {
			assigned[c] = seriesPalette[len(assigned)%len(seriesPalette)]
		}
	}
	return assigned
}

func truncateLabel(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
