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
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"gsdash/dataset"
	"gsdash/export"
)

const (
	minRowsToShow     = 5
	maxRowsToShow     = 50
	defaultRowsToShow = 20
)

// DataTab shows the loaded dataset: a table view over the last N rows,
// a filter box, and export buttons.
type DataTab struct {
	w          fyne.Window
	table      *dataset.Table
	visible    []int // row indices passing the filter
	rowsToShow int

	grid        *widget.Table
	filterEntry *widget.Entry
	rowsSlider  *widget.Slider
	countLabel  *widget.Label
	content     fyne.CanvasObject
}

// NewDataTab builds an empty data tab bound to the given window.
func NewDataTab(w fyne.Window) *DataTab {
	dt := &DataTab{
		w:          w,
		rowsToShow: defaultRowsToShow,
	}
	dt.createUI()
	return dt
}

func (dt *DataTab) createUI() {
	dt.grid = widget.NewTable(
		func() (int, int) {
			if dt.table == nil {
				return 0, 0
			}
			// One extra row for the header.
			return dt.shownRows() + 1, dt.table.ColumnCount()
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				name, _ := dt.table.ColumnName(id.Col)
				label.SetText(name)
				label.TextStyle = fyne.TextStyle{Bold: true}
				return
			}
			label.TextStyle = fyne.TextStyle{}
			v, err := dt.table.Cell(dt.shownRowIndex(id.Row-1), id.Col)
			if err != nil {
				label.SetText("")
				return
			}
			label.SetText(v.Formatted)
		},
	)

	dt.filterEntry = widget.NewEntry()
	dt.filterEntry.SetPlaceHolder(`Filter, e.g. Kota = Jakarta AND Penjualan > 5000000`)
	dt.filterEntry.OnSubmitted = func(string) { dt.applyFilter() }
	filterButton := widget.NewButton("Apply", dt.applyFilter)

	dt.rowsSlider = widget.NewSlider(minRowsToShow, maxRowsToShow)
	dt.rowsSlider.Step = 1
	dt.rowsSlider.Value = float64(dt.rowsToShow)
	dt.rowsSlider.OnChanged = func(v float64) {
		dt.rowsToShow = int(v)
		dt.grid.Refresh()
		dt.updateCount()
	}

	dt.countLabel = widget.NewLabel("")
	dt.countLabel.TextStyle = fyne.TextStyle{Italic: true}

	exportButtons := container.NewHBox(
		widget.NewButton("Download CSV", func() { dt.exportData(export.FormatCSV) }),
		widget.NewButton("JSON", func() { dt.exportData(export.FormatJSON) }),
		widget.NewButton("Parquet", func() { dt.exportData(export.FormatParquet) }),
		widget.NewButton("Excel", func() { dt.exportData(export.FormatXLSX) }),
	)

	top := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Rows to show:"), filterButton,
			container.NewGridWithColumns(2, dt.rowsSlider, dt.filterEntry)),
		container.NewBorder(nil, nil, dt.countLabel, exportButtons),
	)

	dt.content = container.NewBorder(top, nil, nil, nil, dt.grid)
}

// Content returns the tab's root canvas object.
func (dt *DataTab) Content() fyne.CanvasObject {
	return dt.content
}

// SetTable replaces the displayed dataset and resets the filter.
func (dt *DataTab) SetTable(t *dataset.Table) {
	dt.table = t
	dt.filterEntry.SetText("")
	dt.resetVisible()
	dt.grid.Refresh()
	dt.updateCount()
}

func (dt *DataTab) resetVisible() {
	if dt.table == nil {
		dt.visible = nil
		return
	}
	dt.visible = dt.table.FilterRows(nil)
}

// shownRows is how many data rows are currently rendered (the tail of
// the filtered view).
func (dt *DataTab) shownRows() int {
	n := len(dt.visible)
	if n > dt.rowsToShow {
		return dt.rowsToShow
	}
	return n
}

// shownRowIndex maps a rendered row position to a dataset row index.
func (dt *DataTab) shownRowIndex(pos int) int {
	offset := len(dt.visible) - dt.shownRows()
	return dt.visible[offset+pos]
}

func (dt *DataTab) applyFilter() {
	if dt.table == nil {
		return
	}
	query, err := dt.table.ParseQuery(dt.filterEntry.Text)
	if err != nil {
		dialog.ShowError(err, dt.w)
		return
	}
	dt.visible = dt.table.FilterRows(query)
	dt.grid.Refresh()
	dt.updateCount()
}

func (dt *DataTab) updateCount() {
	if dt.table == nil {
		dt.countLabel.SetText("")
		return
	}
	dt.countLabel.SetText(fmt.Sprintf("showing %d of %d rows", dt.shownRows(), len(dt.visible)))
}

// exportData saves the full dataset in the chosen format.
func (dt *DataTab) exportData(format export.Format) {
	if dt.table == nil {
		dialog.ShowInformation("No Data", "Load a sheet before exporting", dt.w)
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, dt.w)
			return
		}
		if writer == nil {
			// User cancelled
			return
		}
		defer writer.Close()

		filePath := writer.URI().Path()

		c := make(chan bool)
		go func(c chan bool) {
			pbi := widget.NewProgressBarInfinite()
			progressDialog := dialog.NewCustomWithoutButtons("Exporting...", pbi, dt.w)
			progressDialog.Resize(fyne.NewSize(300, 100))
			progressDialog.Show()
			pbi.Start()
			for {
				select {
				case <-c:
					progressDialog.Hide()
					pbi.Stop()
					return
				default:
					time.Sleep(time.Millisecond * 500)
				}
			}
		}(c)

		exportErr := export.ToFile(dt.table, format, filePath)
		c <- true

		if exportErr != nil {
			dialog.ShowError(fmt.Errorf("export failed: %w", exportErr), dt.w)
		} else {
			dialog.ShowInformation("Export Successful",
				fmt.Sprintf("Data exported successfully to:\n%s", filePath), dt.w)
		}
	}, dt.w)

	defaultName := "data_" + time.Now().Format("20060102") + format.Ext()
	saveDialog.SetFileName(defaultName)
	saveDialog.Show()
}
