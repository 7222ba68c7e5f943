package windows

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateLabel(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Jakarta", 10, "Jakarta"},
		{"Jakarta Selatan", 10, "Jakarta S…"},
		{"Yogyakarta", 10, "Yogyakarta"},
	}
	for _, c := range cases {
		if got := truncateLabel(c.in, c.max); got != c.want {
			t.Errorf("truncateLabel(%q, %d): expected %q, got %q", c.in, c.max, got, c.want)
		}
	}
}

func TestTruncateLabelMultibyte(t *testing.T) {
	// Truncation counts runes, never splitting a multi-byte character.
	got := truncateLabel("Żyrardów Śródmieście", 10)
	if !utf8.ValidString(got) {
		t.Fatalf("Result is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Errorf("Expected 10 runes, got %d (%q)", n, got)
	}
}

func TestCompactNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{5000000, "5.0M"},
		{12340000, "12.3M"},
		{3500, "3.5k"},
		{1200000000, "1.2B"},
		{42, "42"},
		{19.99, "19.99"},
	}
	for _, c := range cases {
		if got := compactNumber(c.in); got != c.want {
			t.Errorf("compactNumber(%g): expected %s, got %s", c.in, c.want, got)
		}
	}
}
