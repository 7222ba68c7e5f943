package windows

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"gsdash/dataset"
)

func cityTable() *dataset.Table {
	header := []string{"Penjualan", "Kota"}
	records := [][]interface{}{
		{"5000000", "Jakarta"},
		{"3500000", "Bandung"},
		{"7250000", "Jakarta"},
		{"1200000", "Surabaya"},
	}
	return dataset.New(header, records)
}

func TestDataTabCountReflectsFilter(t *testing.T) {
	test.NewApp()
	defer test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	dt := NewDataTab(w)
	dt.SetTable(cityTable())

	if dt.countLabel.Text != "showing 4 of 4 rows" {
		t.Errorf("Before filter: got %q", dt.countLabel.Text)
	}

	dt.filterEntry.SetText("Kota = Jakarta")
	dt.applyFilter()

	if dt.countLabel.Text != "showing 2 of 2 rows" {
		t.Errorf("After filter: got %q", dt.countLabel.Text)
	}
	if len(dt.visible) != 2 {
		t.Errorf("Expected 2 visible rows, got %d", len(dt.visible))
	}
}

func TestDataTabSliderLimitsShownRows(t *testing.T) {
	test.NewApp()
	defer test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	dt := NewDataTab(w)
	dt.rowsToShow = 2
	dt.SetTable(cityTable())

	if dt.shownRows() != 2 {
		t.Errorf("Expected 2 shown rows, got %d", dt.shownRows())
	}
	// The view is the tail of the visible rows.
	if dt.shownRowIndex(0) != 2 || dt.shownRowIndex(1) != 3 {
		t.Errorf("Expected tail rows [2 3], got [%d %d]", dt.shownRowIndex(0), dt.shownRowIndex(1))
	}
	if dt.countLabel.Text != "showing 2 of 4 rows" {
		t.Errorf("Count label: got %q", dt.countLabel.Text)
	}
}

func TestDataTabSetTableResetsFilter(t *testing.T) {
	test.NewApp()
	defer test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	dt := NewDataTab(w)
	dt.SetTable(cityTable())
	dt.filterEntry.SetText("Kota = Jakarta")
	dt.applyFilter()

	dt.SetTable(cityTable())
	if dt.filterEntry.Text != "" {
		t.Errorf("Filter text not cleared: %q", dt.filterEntry.Text)
	}
	if len(dt.visible) != 4 {
		t.Errorf("Expected all 4 rows visible, got %d", len(dt.visible))
	}
}
