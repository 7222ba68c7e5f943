package gsheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheetsServer serves a canned values response and records the
// query parameters of the last request.
func fakeSheetsServer(t *testing.T, lastQuery *url.Values) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*lastQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"Sheet1","majorDimension":"ROWS","values":[["Tanggal","Penjualan"],["01/02/2024",5000000]]}`))
	}))
}

func TestSheetValuesRenderOptions(t *testing.T) {
	var query url.Values
	srv := fakeSheetsServer(t, &query)
	defer srv.Close()

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL), option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("Building service failed: %v", err)
	}
	c := &Client{svc: svc}

	values, err := c.SheetValues(context.Background(), "abc123", "Sheet1")
	if err != nil {
		t.Fatalf("SheetValues failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(values))
	}

	// Numbers stay numeric, dates come back as formatted strings rather
	// than serial numbers.
	if got := query.Get("valueRenderOption"); got != "UNFORMATTED_VALUE" {
		t.Errorf("Expected UNFORMATTED_VALUE, got %q", got)
	}
	if got := query.Get("dateTimeRenderOption"); got != "FORMATTED_STRING" {
		t.Errorf("Expected FORMATTED_STRING, got %q", got)
	}
}

func TestTimeoutContextDefault(t *testing.T) {
	ctx, cancel := createTimeoutContext(context.Background(), 0)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("Expected a deadline")
	}
	until := time.Until(deadline)
	if until > 60*time.Second || until < 59*time.Second {
		t.Errorf("Expected a 60 second default, got %v", until)
	}
}

func TestTimeoutContextCustom(t *testing.T) {
	ctx, cancel := createTimeoutContext(context.Background(), 5)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("Expected a deadline")
	}
	until := time.Until(deadline)
	if until > 5*time.Second || until < 4*time.Second {
		t.Errorf("Expected a 5 second timeout, got %v", until)
	}
}
