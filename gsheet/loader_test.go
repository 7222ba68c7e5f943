package gsheet

import (
	"context"
	"errors"
	"testing"
	"time"
)

const testLocator = "https://docs.google.com/spreadsheets/d/abc123_XY-z/edit#gid=0"

// fakeSource serves canned sheet data and counts remote calls.
type fakeSource struct {
	titles     []string
	values     map[string][][]interface{}
	valueCalls int
	valuesErr  error
}

func (f *fakeSource) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	return f.titles, nil
}

func (f *fakeSource) SheetValues(ctx context.Context, spreadsheetID, sheetName string) ([][]interface{}, error) {
	f.valueCalls++
	if f.valuesErr != nil {
		return nil, f.valuesErr
	}
	return f.values[sheetName], nil
}

func newFakeLoader(src *fakeSource) *Loader {
	return NewLoaderSource(func(ctx context.Context) (SheetSource, error) {
		return src, nil
	}, 5*time.Minute)
}

func salesSource() *fakeSource {
	return &fakeSource{
		titles: []string{"Sheet1", "Kosong"},
		values: map[string][][]interface{}{
			"Sheet1": {
				{"Tanggal", "Penjualan", "Kota"},
				{"2024-01-01", "5000000", "Jakarta"},
				{"2024-01-02", "3500000", "Bandung"},
			},
			"Kosong": {},
		},
	}
}

func TestSpreadsheetID(t *testing.T) {
	id, err := SpreadsheetID(testLocator)
	if err != nil {
		t.Fatalf("SpreadsheetID failed: %v", err)
	}
	if id != "abc123_XY-z" {
		t.Errorf("Expected abc123_XY-z, got %s", id)
	}

	for _, bad := range []string{"", "not a url", "https://example.com/doc/42"} {
		if _, err := SpreadsheetID(bad); !errors.Is(err, ErrBadLocator) {
			t.Errorf("SpreadsheetID(%q): expected ErrBadLocator, got %v", bad, err)
		}
	}
}

func TestLoadBuildsTypedTable(t *testing.T) {
	l := newFakeLoader(salesSource())

	tbl, err := l.Load(context.Background(), testLocator, "Sheet1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.RowCount() != 2 || tbl.ColumnCount() != 3 {
		t.Fatalf("Expected 2x3 table, got %dx%d", tbl.RowCount(), tbl.ColumnCount())
	}

	numeric := tbl.NumericColumns()
	if len(numeric) != 1 || numeric[0] != "Penjualan" {
		t.Errorf("Expected numeric columns [Penjualan], got %v", numeric)
	}
}

func TestLoadMemoizesWithinWindow(t *testing.T) {
	src := salesSource()
	l := newFakeLoader(src)

	first, err := l.Load(context.Background(), testLocator, "Sheet1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := l.Load(context.Background(), testLocator, "Sheet1")
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}

	if src.valueCalls != 1 {
		t.Errorf("Expected 1 remote call, got %d", src.valueCalls)
	}
	if first != second {
		t.Error("Expected the identical table from cache")
	}

	if _, ok := l.LoadedAt(testLocator, "Sheet1"); !ok {
		t.Error("LoadedAt missed a cached entry")
	}
}

func TestLoadInvalidateForcesRefetch(t *testing.T) {
	src := salesSource()
	l := newFakeLoader(src)

	if _, err := l.Load(context.Background(), testLocator, "Sheet1"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	l.Invalidate(testLocator, "Sheet1")
	if _, err := l.Load(context.Background(), testLocator, "Sheet1"); err != nil {
		t.Fatalf("Load after invalidate failed: %v", err)
	}

	if src.valueCalls != 2 {
		t.Errorf("Expected 2 remote calls, got %d", src.valueCalls)
	}
}

func TestLoadEmptySheetYieldsEmptyTable(t *testing.T) {
	l := newFakeLoader(salesSource())

	tbl, err := l.Load(context.Background(), testLocator, "Kosong")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !tbl.Empty() {
		t.Errorf("Expected empty table, got %d rows", tbl.RowCount())
	}
}

func TestLoadUnknownSheet(t *testing.T) {
	l := newFakeLoader(salesSource())

	_, err := l.Load(context.Background(), testLocator, "Missing")
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("Expected ErrSheetNotFound, got %v", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatal("Expected a *FetchError wrapper")
	}
	if fe.Sheet != "Missing" {
		t.Errorf("Expected sheet Missing in error, got %s", fe.Sheet)
	}
}

func TestLoadBadLocator(t *testing.T) {
	l := newFakeLoader(salesSource())

	_, err := l.Load(context.Background(), "https://example.com/nope", "Sheet1")
	if !errors.Is(err, ErrBadLocator) {
		t.Errorf("Expected ErrBadLocator, got %v", err)
	}
}

func TestLoadValuesErrorWrapped(t *testing.T) {
	src := salesSource()
	src.valuesErr = errors.New("quota exceeded")
	l := newFakeLoader(src)

	_, err := l.Load(context.Background(), testLocator, "Sheet1")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected *FetchError, got %v", err)
	}
	if fe.Locator != testLocator {
		t.Errorf("Expected locator in error, got %s", fe.Locator)
	}
}

func TestLoadOpenErrorPassesThrough(t *testing.T) {
	authErr := &AuthError{Err: errors.New("bad key")}
	l := NewLoaderSource(func(ctx context.Context) (SheetSource, error) {
		return nil, authErr
	}, 5*time.Minute)

	_, err := l.Load(context.Background(), testLocator, "Sheet1")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("Expected *AuthError, got %v", err)
	}
}
