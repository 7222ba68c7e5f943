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

package gsheet

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"gsdash/dataset"
)

// spreadsheetIDPattern extracts the document id from a full sheet URL,
// e.g. https://docs.google.com/spreadsheets/d/<id>/edit#gid=0
var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID extracts the spreadsheet id from a locator URL.
// Returns ErrBadLocator when the URL does not identify a spreadsheet.
func SpreadsheetID(locator string) (string, error) {
	m := spreadsheetIDPattern.FindStringSubmatch(locator)
	if m == nil {
		return "", ErrBadLocator
	}
	return m[1], nil
}

// SheetSource provides access to remote spreadsheet content.
type SheetSource interface {
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	SheetValues(ctx context.Context, spreadsheetID, sheetName string) ([][]interface{}, error)
}

// Loader fetches worksheets into datasets, memoizing results per
// (locator, sheet) for a freshness window.
type Loader struct {
	open  func(ctx context.Context) (SheetSource, error)
	cache *Cache
}

// NewLoader creates a loader backed by the binder's cached client.
func NewLoader(binder *Binder, window time.Duration) *Loader {
	return NewLoaderSource(func(ctx context.Context) (SheetSource, error) {
		return binder.Client(ctx)
	}, window)
}

// NewLoaderSource creates a loader over an arbitrary sheet source.
func NewLoaderSource(open func(ctx context.Context) (SheetSource, error), window time.Duration) *Loader {
	return &Loader{open: open, cache: NewCache(window)}
}

// Load returns the dataset for (locator, sheetName), served from cache
// while fresh. An empty sheet yields an empty dataset, not an error.
// Authentication failures surface as *AuthError; everything else as
// *FetchError.
func (l *Loader) Load(ctx context.Context, locator, sheetName string) (*dataset.Table, error) {
	if table, _, ok := l.cache.Get(locator, sheetName); ok {
		return table, nil
	}

	table, err := l.fetch(ctx, locator, sheetName)
	if err != nil {
		return nil, err
	}
	l.cache.Put(locator, sheetName, table)
	return table, nil
}

// LoadedAt reports when the cached dataset for (locator, sheetName)
// was fetched.
func (l *Loader) LoadedAt(locator, sheetName string) (time.Time, bool) {
	_, fetched, ok := l.cache.Get(locator, sheetName)
	return fetched, ok
}

// Invalidate forces the next Load of (locator, sheetName) to refetch.
func (l *Loader) Invalidate(locator, sheetName string) {
	l.cache.Invalidate(locator, sheetName)
}

// InvalidateAll drops every memoized dataset.
func (l *Loader) InvalidateAll() {
	l.cache.InvalidateAll()
}

func (l *Loader) fetch(ctx context.Context, locator, sheetName string) (*dataset.Table, error) {
	id, err := SpreadsheetID(locator)
	if err != nil {
		return nil, &FetchError{Locator: locator, Sheet: sheetName, Err: err}
	}

	src, err := l.open(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := createTimeoutContext(ctx, 0)
	defer cancel()

	titles, err := src.SheetTitles(ctx, id)
	if err != nil {
		return nil, &FetchError{Locator: locator, Sheet: sheetName, Err: err}
	}
	if !containsTitle(titles, sheetName) {
		return nil, &FetchError{Locator: locator, Sheet: sheetName, Err: ErrSheetNotFound}
	}

	values, err := src.SheetValues(ctx, id, sheetName)
	if err != nil {
		return nil, &FetchError{Locator: locator, Sheet: sheetName, Err: err}
	}
	return tableFromValues(values), nil
}

func containsTitle(titles []string, name string) bool {
	for _, t := range titles {
		if t == name {
			return true
		}
	}
	return false
}

// tableFromValues converts the raw value grid into a dataset. The first
// row is the header; remaining rows are records.
func tableFromValues(values [][]interface{}) *dataset.Table {
	if len(values) == 0 {
		return dataset.New(nil, nil)
	}
	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = fmt.Sprintf("%v", cell)
	}
	return dataset.New(header, values[1:])
}
