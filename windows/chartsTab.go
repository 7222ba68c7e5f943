package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"gsdash/dataset"
)

// noColor is the scatter option for a single-color plot.
const noColor = "(none)"

// ChartsTab renders line, bar and scatter charts from the loaded dataset,
// with column pickers per chart.
type ChartsTab struct {
	table *dataset.Table

	content     *fyne.Container
	lineArea    *fyne.Container
	barArea     *fyne.Container
	scatterArea *fyne.Container
}

// NewChartsTab builds an empty charts tab.
func NewChartsTab() *ChartsTab {
	ct := &ChartsTab{
		lineArea:    container.NewStack(),
		barArea:     container.NewStack(),
		scatterArea: container.NewStack(),
		content:     container.NewStack(),
	}
	ct.showInfo("Load a sheet to see charts")
	return ct
}

// Content returns the tab's root canvas object.
func (ct *ChartsTab) Content() fyne.CanvasObject {
	return ct.content
}

func (ct *ChartsTab) showInfo(msg string) {
	label := widget.NewLabel(msg)
	label.Alignment = fyne.TextAlignCenter
	ct.content.Objects = []fyne.CanvasObject{label}
	ct.content.Refresh()
}

// SetTable rebuilds the chart pickers for a new dataset.
func (ct *ChartsTab) SetTable(t *dataset.Table) {
	ct.table = t
	numeric := t.NumericColumns()
	text := t.TextColumns()

	if len(numeric) == 0 {
		ct.showInfo("No numeric columns to visualize")
		return
	}

	sections := make([]fyne.CanvasObject, 0, 3)
	sections = append(sections, ct.buildLineSection(numeric))
	if len(text) > 0 {
		sections = append(sections, ct.buildBarSection(text, numeric))
	}
	if len(numeric) >= 2 {
		sections = append(sections, ct.buildScatterSection(numeric, text))
	}

	ct.content.Objects = []fyne.CanvasObject{
		container.NewVScroll(container.NewVBox(sections...)),
	}
	ct.content.Refresh()
}

func (ct *ChartsTab) buildLineSection(numeric []string) fyne.CanvasObject {
	ySelect := widget.NewSelect(numeric, func(col string) {
		ys := ct.columnFloats(col)
		chart := NewLineChart(fmt.Sprintf("Trend %s", col), ys)
		ct.lineArea.Objects = []fyne.CanvasObject{chart}
		ct.lineArea.Refresh()
	})
	ySelect.SetSelected(numeric[0])

	picker := container.NewHBox(widget.NewLabel("Line chart:"), ySelect)
	return container.NewVBox(picker, ct.lineArea)
}

func (ct *ChartsTab) buildBarSection(text, numeric []string) fyne.CanvasObject {
	var catCol, valCol string

	render := func() {
		if catCol == "" || valCol == "" {
			return
		}
		groups, err := dataset.GroupSum(ct.table, catCol, valCol)
		if err != nil {
			return
		}
		chart := NewBarChart(fmt.Sprintf("%s per %s", valCol, catCol), groups)
		ct.barArea.Objects = []fyne.CanvasObject{chart}
		ct.barArea.Refresh()
	}

	catSelect := widget.NewSelect(text, func(col string) {
		catCol = col
		render()
	})
	valSelect := widget.NewSelect(numeric, func(col string) {
		valCol = col
		render()
	})
	catSelect.SetSelected(text[0])
	valSelect.SetSelected(numeric[0])

	picker := container.NewHBox(
		widget.NewLabel("Bar chart:"),
		catSelect,
		widget.NewLabel("value:"),
		valSelect,
	)
	return container.NewVBox(widget.NewSeparator(), picker, ct.barArea)
}

func (ct *ChartsTab) buildScatterSection(numeric, text []string) fyne.CanvasObject {
	xCol := numeric[0]
	yCol := numeric[1]
	colorCol := noColor

	render := func() {
		xs, ys, cats := ct.scatterData(xCol, yCol, colorCol)
		chart := NewScatterChart(fmt.Sprintf("%s vs %s", xCol, yCol), xs, ys, cats)
		ct.scatterArea.Objects = []fyne.CanvasObject{chart}
		ct.scatterArea.Refresh()
	}

	xSelect := widget.NewSelect(numeric, func(col string) {
		xCol = col
		render()
	})
	ySelect := widget.NewSelect(numeric, func(col string) {
		yCol = col
		render()
	})
	colorSelect := widget.NewSelect(append([]string{noColor}, text...), func(col string) {
		colorCol = col
		render()
	})

	xSelect.SetSelected(xCol)
	ySelect.SetSelected(yCol)
	colorSelect.SetSelected(noColor)

	picker := container.NewHBox(
		widget.NewLabel("Scatter x:"),
		xSelect,
		widget.NewLabel("y:"),
		ySelect,
		widget.NewLabel("color by:"),
		colorSelect,
	)
	return container.NewVBox(widget.NewSeparator(), picker, ct.scatterArea)
}

// columnFloats returns the non-null numeric values of a column in row order.
func (ct *ChartsTab) columnFloats(name string) []float64 {
	idx, err := ct.table.ColumnIndex(name)
	if err != nil {
		return nil
	}
	values, _ := ct.table.ColumnValues(idx)
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := v.Float(); ok {
			data = append(data, f)
		}
	}
	return data
}

// scatterData collects aligned (x, y) pairs, skipping rows where either
// side is missing, with the optional color category per point.
func (ct *ChartsTab) scatterData(xCol, yCol, colorCol string) ([]float64, []float64, []string) {
	xi, err := ct.table.ColumnIndex(xCol)
	if err != nil {
		return nil, nil, nil
	}
	yi, err := ct.table.ColumnIndex(yCol)
	if err != nil {
		return nil, nil, nil
	}

	var ci = -1
	if colorCol != noColor {
		if i, err := ct.table.ColumnIndex(colorCol); err == nil {
			ci = i
		}
	}

	xVals, _ := ct.table.ColumnValues(xi)
	yVals, _ := ct.table.ColumnValues(yi)

	xs := make([]float64, 0, len(xVals))
	ys := make([]float64, 0, len(xVals))
	var cats []string
	if ci >= 0 {
		cats = make([]string, 0, len(xVals))
	}

	for r := range xVals {
		x, okX := xVals[r].Float()
		y, okY := yVals[r].Float()
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
		if ci >= 0 {
			v, _ := ct.table.Cell(r, ci)
			cats = append(cats, v.Formatted)
		}
	}
	return xs, ys, cats
}
