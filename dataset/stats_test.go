package dataset

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDescribe(t *testing.T) {
	header := []string{"Produk", "Penjualan"}
	records := [][]interface{}{
		{"Laptop", "10"},
		{"Phone", "20"},
		{"Tablet", "30"},
		{"Laptop", "40"},
	}
	tbl := New(header, records)

	stats := Describe(tbl)
	if len(stats) != 1 {
		t.Fatalf("Expected 1 numeric column, got %d", len(stats))
	}

	s := stats[0]
	if s.Column != "Penjualan" {
		t.Errorf("Expected Penjualan, got %s", s.Column)
	}
	if s.Count != 4 {
		t.Errorf("Expected count 4, got %d", s.Count)
	}
	if !almostEqual(s.Mean, 25) {
		t.Errorf("Expected mean 25, got %g", s.Mean)
	}
	// Sample standard deviation of 10,20,30,40.
	if !almostEqual(s.Std, math.Sqrt(500.0/3.0)) {
		t.Errorf("Expected std %g, got %g", math.Sqrt(500.0/3.0), s.Std)
	}
	if s.Min != 10 || s.Max != 40 {
		t.Errorf("Expected min 10 max 40, got %g %g", s.Min, s.Max)
	}
	// Linear interpolation quantiles.
	if !almostEqual(s.Q25, 17.5) {
		t.Errorf("Expected Q25 17.5, got %g", s.Q25)
	}
	if !almostEqual(s.Median, 25) {
		t.Errorf("Expected median 25, got %g", s.Median)
	}
	if !almostEqual(s.Q75, 32.5) {
		t.Errorf("Expected Q75 32.5, got %g", s.Q75)
	}
}

func TestDescribeSkipsNulls(t *testing.T) {
	header := []string{"Penjualan"}
	records := [][]interface{}{{"10"}, {nil}, {"30"}}
	tbl := New(header, records)

	stats := Describe(tbl)
	if len(stats) != 1 {
		t.Fatalf("Expected 1 column, got %d", len(stats))
	}
	if stats[0].Count != 2 {
		t.Errorf("Expected count 2, got %d", stats[0].Count)
	}
	if !almostEqual(stats[0].Mean, 20) {
		t.Errorf("Expected mean 20, got %g", stats[0].Mean)
	}
}

func TestDescribeSingleValueStdIsNaN(t *testing.T) {
	tbl := New([]string{"X"}, [][]interface{}{{"5"}})

	stats := Describe(tbl)
	if len(stats) != 1 {
		t.Fatalf("Expected 1 column, got %d", len(stats))
	}
	if !math.IsNaN(stats[0].Std) {
		t.Errorf("Expected NaN std for single value, got %g", stats[0].Std)
	}
	if stats[0].Median != 5 {
		t.Errorf("Expected median 5, got %g", stats[0].Median)
	}
}

func TestMissingCounts(t *testing.T) {
	header := []string{"A", "B"}
	records := [][]interface{}{
		{"x", nil},
		{nil, nil},
		{"y", "z"},
	}
	tbl := New(header, records)

	counts := MissingCounts(tbl)
	if len(counts) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(counts))
	}
	if counts[0].Nulls != 1 {
		t.Errorf("Column A: expected 1 null, got %d", counts[0].Nulls)
	}
	if counts[1].Nulls != 2 {
		t.Errorf("Column B: expected 2 nulls, got %d", counts[1].Nulls)
	}
}

func TestTypeReport(t *testing.T) {
	tbl := salesTable()

	report := TypeReport(tbl)
	want := []string{"Date", "Int", "String", "String"}
	if len(report) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(report))
	}
	for i, w := range want {
		if report[i].Type != w {
			t.Errorf("Column %s: expected %s, got %s", report[i].Column, w, report[i].Type)
		}
	}
}

func TestLatestDeltas(t *testing.T) {
	header := []string{"Penjualan", "Biaya"}
	records := [][]interface{}{
		{"100", "50"},
		{"150", "80"},
		{"120", "90"},
	}
	tbl := New(header, records)

	deltas := LatestDeltas(tbl)
	if len(deltas) != 2 {
		t.Fatalf("Expected 2 deltas, got %d", len(deltas))
	}
	if deltas[0].Latest != 120 || deltas[0].Previous != 150 || deltas[0].Delta != -30 {
		t.Errorf("Penjualan delta wrong: %+v", deltas[0])
	}
	if deltas[1].Delta != 10 {
		t.Errorf("Biaya delta: expected 10, got %g", deltas[1].Delta)
	}
}

func TestLatestDeltasNeedsTwoRows(t *testing.T) {
	tbl := New([]string{"X"}, [][]interface{}{{"5"}})
	if deltas := LatestDeltas(tbl); deltas != nil {
		t.Errorf("Expected nil for single-row table, got %v", deltas)
	}
}

func TestGroupSum(t *testing.T) {
	tbl := salesTable()

	groups, err := GroupSum(tbl, "Kota", "Penjualan")
	if err != nil {
		t.Fatalf("GroupSum failed: %v", err)
	}

	want := []GroupRow{
		{Category: "Bandung", Sum: 3500000},
		{Category: "Jakarta", Sum: 12250000},
		{Category: "Surabaya", Sum: 1200000},
	}
	if len(groups) != len(want) {
		t.Fatalf("Expected %d groups, got %d", len(want), len(groups))
	}
	for i, w := range want {
		if groups[i] != w {
			t.Errorf("Group %d: expected %+v, got %+v", i, w, groups[i])
		}
	}
}

func TestGroupSumErrors(t *testing.T) {
	tbl := salesTable()

	if _, err := GroupSum(tbl, "Provinsi", "Penjualan"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
	if _, err := GroupSum(tbl, "Kota", "Produk"); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("Expected ErrNotNumeric, got %v", err)
	}
}
