package dataset

import (
	"errors"
	"testing"
)

func salesTable() *Table {
	header := []string{"Tanggal", "Penjualan", "Produk", "Kota"}
	records := [][]interface{}{
		{"2024-01-01", "5000000", "Laptop", "Jakarta"},
		{"2024-01-02", "3500000", "Phone", "Bandung"},
		{"2024-01-03", "7250000", "Laptop", "Jakarta"},
		{"2024-01-04", "1200000", "Tablet", "Surabaya"},
	}
	return New(header, records)
}

func TestNewTableShape(t *testing.T) {
	tbl := salesTable()

	if tbl.RowCount() != 4 {
		t.Errorf("Expected 4 rows, got %d", tbl.RowCount())
	}
	if tbl.ColumnCount() != 4 {
		t.Errorf("Expected 4 columns, got %d", tbl.ColumnCount())
	}
	if tbl.Empty() {
		t.Error("Table with rows reported Empty")
	}

	names := tbl.ColumnNames()
	want := []string{"Tanggal", "Penjualan", "Produk", "Kota"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Column %d: expected %q, got %q", i, n, names[i])
		}
	}
}

func TestNewTablePadsShortRows(t *testing.T) {
	header := []string{"A", "B", "C"}
	records := [][]interface{}{
		{"x", "y", "z"},
		{"x"},
	}
	tbl := New(header, records)

	if tbl.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.RowCount())
	}
	for c := 1; c < 3; c++ {
		v, err := tbl.Cell(1, c)
		if err != nil {
			t.Fatalf("Cell(1, %d) failed: %v", c, err)
		}
		if !v.IsNull {
			t.Errorf("Cell(1, %d): expected null padding, got %v", c, v.Raw)
		}
	}
}

func TestEmptyTable(t *testing.T) {
	tbl := New(nil, nil)

	if !tbl.Empty() {
		t.Error("Table without rows did not report Empty")
	}
	if tbl.RowCount() != 0 || tbl.ColumnCount() != 0 {
		t.Errorf("Expected 0x0 table, got %dx%d", tbl.RowCount(), tbl.ColumnCount())
	}
}

func TestColumnIndexCaseInsensitive(t *testing.T) {
	tbl := salesTable()

	for _, name := range []string{"Kota", "kota", "KOTA"} {
		i, err := tbl.ColumnIndex(name)
		if err != nil {
			t.Fatalf("ColumnIndex(%q) failed: %v", name, err)
		}
		if i != 3 {
			t.Errorf("ColumnIndex(%q): expected 3, got %d", name, i)
		}
	}

	if _, err := tbl.ColumnIndex("Provinsi"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestCellAndRowBounds(t *testing.T) {
	tbl := salesTable()

	if _, err := tbl.Cell(0, 9); !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("Expected ErrInvalidColumn, got %v", err)
	}
	if _, err := tbl.Cell(9, 0); !errors.Is(err, ErrInvalidRow) {
		t.Errorf("Expected ErrInvalidRow, got %v", err)
	}
	if _, err := tbl.Row(-1); !errors.Is(err, ErrInvalidRow) {
		t.Errorf("Expected ErrInvalidRow, got %v", err)
	}

	row, err := tbl.Row(0)
	if err != nil {
		t.Fatalf("Row(0) failed: %v", err)
	}
	if len(row) != 4 {
		t.Fatalf("Expected 4 values in row, got %d", len(row))
	}
	if row[2].Formatted != "Laptop" {
		t.Errorf("Expected 'Laptop', got %q", row[2].Formatted)
	}
}

func TestNumericAndTextColumns(t *testing.T) {
	tbl := salesTable()

	numeric := tbl.NumericColumns()
	if len(numeric) != 1 || numeric[0] != "Penjualan" {
		t.Errorf("Expected numeric columns [Penjualan], got %v", numeric)
	}

	text := tbl.TextColumns()
	if len(text) != 2 || text[0] != "Produk" || text[1] != "Kota" {
		t.Errorf("Expected text columns [Produk Kota], got %v", text)
	}
}
