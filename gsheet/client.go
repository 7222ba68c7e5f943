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

// Package gsheet binds an authenticated Google Sheets client and loads
// worksheet data into tabular datasets.
package gsheet

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps an authenticated Sheets service handle.
type Client struct {
	svc *sheets.Service
}

// NewClient builds a Sheets client from service-account JSON credentials.
// Malformed or rejected credentials yield an *AuthError.
func NewClient(ctx context.Context, credsJSON []byte) (*Client, error) {
	creds, err := google.CredentialsFromJSON(ctx, credsJSON, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return &Client{svc: svc}, nil
}

// SheetTitles returns the titles of all sheets in the spreadsheet.
func (c *Client) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// SheetValues fetches every row of the named sheet. Numbers come back
// unformatted so numeric cells stay numeric. Date and time cells come
// back as their formatted strings rather than serial numbers, so date
// columns stay parseable downstream.
func (c *Client) SheetValues(ctx context.Context, spreadsheetID, sheetName string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, sheetName).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// Binder produces a reusable authenticated client from externally supplied
// credentials. The handle is built lazily and cached for the lifetime of
// the process, or until Invalidate is called.
type Binder struct {
	mu        sync.Mutex
	credsJSON []byte
	client    *Client
}

// NewBinder creates a binder holding opaque service-account credentials.
func NewBinder(credsJSON []byte) *Binder {
	return &Binder{credsJSON: credsJSON}
}

// SetCredentials replaces the credentials and drops any cached handle.
func (b *Binder) SetCredentials(credsJSON []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credsJSON = credsJSON
	b.client = nil
}

// Client returns the cached handle, authenticating on first use.
func (b *Binder) Client(ctx context.Context) (*Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return b.client, nil
	}
	c, err := NewClient(ctx, b.credsJSON)
	if err != nil {
		return nil, err
	}
	b.client = c
	return c, nil
}

// Invalidate drops the cached handle so the next call re-authenticates.
func (b *Binder) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.client = nil
}

// createTimeoutContext creates a context with a configurable timeout for
// Sheets API calls (default: 60 seconds if <= 0).
func createTimeoutContext(ctx context.Context, timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	return context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
}
