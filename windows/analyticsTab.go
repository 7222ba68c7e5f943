package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"gsdash/dataset"
)

// AnalyticsTab shows descriptive statistics, latest-vs-previous metric
// cards, a data quality section, and a formula box evaluated over the
// loaded dataset.
type AnalyticsTab struct {
	w     fyne.Window
	table *dataset.Table

	content *fyne.Container
}

// NewAnalyticsTab builds an empty analytics tab bound to the given window.
func NewAnalyticsTab(w fyne.Window) *AnalyticsTab {
	at := &AnalyticsTab{
		w:       w,
		content: container.NewStack(),
	}
	at.showInfo("Load a sheet to see analytics")
	return at
}

// Content returns the tab's root canvas object.
func (at *AnalyticsTab) Content() fyne.CanvasObject {
	return at.content
}

func (at *AnalyticsTab) showInfo(msg string) {
	label := widget.NewLabel(msg)
	label.Alignment = fyne.TextAlignCenter
	at.content.Objects = []fyne.CanvasObject{label}
	at.content.Refresh()
}

// SetTable rebuilds the analytics view for a new dataset.
func (at *AnalyticsTab) SetTable(t *dataset.Table) {
	at.table = t

	sections := []fyne.CanvasObject{
		at.buildDescribeSection(),
		at.buildDeltaSection(),
		at.buildQualitySection(),
		at.buildFormulaSection(),
	}

	at.content.Objects = []fyne.CanvasObject{
		container.NewVScroll(container.NewVBox(sections...)),
	}
	at.content.Refresh()
}

func (at *AnalyticsTab) buildDescribeSection() fyne.CanvasObject {
	stats := dataset.Describe(at.table)
	if len(stats) == 0 {
		return widget.NewCard("", "Descriptive Statistics",
			widget.NewLabel("No numeric columns"))
	}

	headers := []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.Column,
			fmt.Sprintf("%d", s.Count),
			statNumber(s.Mean),
			statNumber(s.Std),
			statNumber(s.Min),
			statNumber(s.Q25),
			statNumber(s.Median),
			statNumber(s.Q75),
			statNumber(s.Max),
		}
	}
	return widget.NewCard("", "Descriptive Statistics", newStaticTable(headers, rows))
}

func (at *AnalyticsTab) buildDeltaSection() fyne.CanvasObject {
	deltas := dataset.LatestDeltas(at.table)
	if len(deltas) == 0 {
		return container.NewVBox()
	}

	cards := make([]fyne.CanvasObject, len(deltas))
	for i, d := range deltas {
		value := widget.NewLabel(compactNumber(d.Latest))
		value.TextStyle = fyne.TextStyle{Bold: true}
		deltaStr := compactNumber(d.Delta)
		if d.Delta >= 0 {
			deltaStr = "+" + deltaStr
		}
		change := widget.NewLabel(deltaStr + " vs previous")
		change.TextStyle = fyne.TextStyle{Italic: true}
		cards[i] = widget.NewCard(d.Column, "", container.NewVBox(value, change))
	}
	return widget.NewCard("", "Latest vs Previous",
		container.NewGridWithColumns(len(cards), cards...))
}

func (at *AnalyticsTab) buildQualitySection() fyne.CanvasObject {
	missing := dataset.MissingCounts(at.table)
	withNulls := make([][]string, 0)
	for _, m := range missing {
		if m.Nulls > 0 {
			withNulls = append(withNulls, []string{m.Column, fmt.Sprintf("%d", m.Nulls)})
		}
	}

	var missingView fyne.CanvasObject
	if len(withNulls) == 0 {
		missingView = widget.NewLabel("No missing values")
	} else {
		missingView = newStaticTable([]string{"Column", "Missing"}, withNulls)
	}

	types := dataset.TypeReport(at.table)
	typeRows := make([][]string, len(types))
	for i, ti := range types {
		typeRows[i] = []string{ti.Column, ti.Type}
	}
	typesView := newStaticTable([]string{"Column", "Type"}, typeRows)

	return widget.NewCard("", "Data Quality", container.NewGridWithColumns(2,
		container.NewVBox(widget.NewLabel("Missing Values:"), missingView),
		container.NewVBox(widget.NewLabel("Data Types:"), typesView),
	))
}

func (at *AnalyticsTab) buildFormulaSection() fyne.CanvasObject {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(`Go expression, e.g. Sum(Col("Penjualan")) / float64(Rows())`)

	result := widget.NewLabel("")
	result.Wrapping = fyne.TextWrapWord

	run := func() {
		out, err := EvalFormula(at.table, entry.Text)
		if err != nil {
			result.SetText(fmt.Sprintf("Error: %v", err))
			return
		}
		result.SetText(out)
	}
	entry.OnSubmitted = func(string) { run() }

	help := widget.NewLabel("Col, Text, Rows, Sum, Mean, Min, Max are available.")
	help.TextStyle = fyne.TextStyle{Italic: true}

	return widget.NewCard("", "Custom Formula", container.NewVBox(
		container.NewBorder(nil, nil, nil, widget.NewButton("Evaluate", run), entry),
		help,
		result,
	))
}

// statNumber renders a statistic with a small fixed precision.
func statNumber(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// newStaticTable renders immutable rows with a bold header row.
func newStaticTable(headers []string, rows [][]string) fyne.CanvasObject {
	table := widget.NewTable(
		func() (int, int) {
			return len(rows) + 1, len(headers)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.SetText(headers[id.Col])
				label.TextStyle = fyne.TextStyle{Bold: true}
				return
			}
			label.TextStyle = fyne.TextStyle{}
			label.SetText(rows[id.Row-1][id.Col])
		},
	)
	height := float32(36 * (len(rows) + 1))
	if height > 320 {
		height = 320
	}
	return container.NewGridWrap(fyne.NewSize(chartWidth, height), table)
}
