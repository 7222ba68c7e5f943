package gsheet

import (
	"testing"
	"time"

	"gsdash/dataset"
)

func testTable(rows int) *dataset.Table {
	records := make([][]interface{}, rows)
	for i := range records {
		records[i] = []interface{}{"x"}
	}
	return dataset.New([]string{"A"}, records)
}

func TestCachePutGet(t *testing.T) {
	c := NewCache(5 * time.Minute)
	tbl := testTable(3)

	c.Put("url1", "Sheet1", tbl)

	got, fetched, ok := c.Get("url1", "Sheet1")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got != tbl {
		t.Error("Expected the identical table pointer back")
	}
	if fetched.IsZero() {
		t.Error("Expected a fetch time")
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(5 * time.Minute)
	c.Put("url1", "Sheet1", testTable(1))

	if _, _, ok := c.Get("url1", "Sheet2"); ok {
		t.Error("Different sheet name produced a hit")
	}
	if _, _, ok := c.Get("url2", "Sheet1"); ok {
		t.Error("Different locator produced a hit")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(5 * time.Minute)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Put("url1", "Sheet1", testTable(1))

	current = current.Add(4 * time.Minute)
	if _, _, ok := c.Get("url1", "Sheet1"); !ok {
		t.Error("Entry expired before the freshness window")
	}

	current = current.Add(2 * time.Minute)
	if _, _, ok := c.Get("url1", "Sheet1"); ok {
		t.Error("Entry survived past the freshness window")
	}
}

func TestCacheLastWriterWins(t *testing.T) {
	c := NewCache(5 * time.Minute)
	first := testTable(1)
	second := testTable(2)

	c.Put("url1", "Sheet1", first)
	c.Put("url1", "Sheet1", second)

	got, _, ok := c.Get("url1", "Sheet1")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got != second {
		t.Error("Expected the later write to win")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(5 * time.Minute)
	c.Put("url1", "Sheet1", testTable(1))
	c.Put("url1", "Sheet2", testTable(1))

	c.Invalidate("url1", "Sheet1")
	if _, _, ok := c.Get("url1", "Sheet1"); ok {
		t.Error("Invalidated entry still present")
	}
	if _, _, ok := c.Get("url1", "Sheet2"); !ok {
		t.Error("Invalidate removed an unrelated entry")
	}

	c.InvalidateAll()
	if _, _, ok := c.Get("url1", "Sheet2"); ok {
		t.Error("InvalidateAll left an entry behind")
	}
}
