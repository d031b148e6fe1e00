package source

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse test document: %v", err)
	}
	return doc
}

func TestParseServings(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"4", 4},
		{" 6 servings ", 6},
		{"Servings: 8", 8},
		{"12-16", 12},
		{"", 0},
		{"a few", 0},
	}
	for _, tt := range tests {
		if got := parseServings(tt.in); got != tt.want {
			t.Errorf("parseServings(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"January 5, 2022", timePtr(2022, time.January, 5)},
		{"Published January 5, 2022", timePtr(2022, time.January, 5)},
		{"Updated Jan 5, 2022", timePtr(2022, time.January, 5)},
		{"5 January 2022", timePtr(2022, time.January, 5)},
		{"2022-01-05", timePtr(2022, time.January, 5)},
		{"", nil},
		{"yesterday", nil},
	}
	for _, tt := range tests {
		got := parseDate(tt.in)
		switch {
		case got == nil && tt.want == nil:
		case got == nil || tt.want == nil || !got.Equal(*tt.want):
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestContentImage(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<img src="https://cdn.example.com/icon.svg">
		<img src="https://assets.pinterest.com/share.png">
		<img src="https://cdn.example.com/sitelogo.png">
		<img src="https://cdn.example.com/sidebar.jpg" width="200" height="600">
		<img src="https://cdn.example.com/dish.jpg" width="800" height="600">
	</body></html>`)
	if got, want := contentImage(doc), "https://cdn.example.com/dish.jpg"; got != want {
		t.Errorf("contentImage() = %q, want %q", got, want)
	}
}

func TestContentImageNoneQualifies(t *testing.T) {
	doc := mustDoc(t, `<html><body><img src="https://cdn.example.com/icon.svg"></body></html>`)
	if got := contentImage(doc); got != "" {
		t.Errorf("contentImage() = %q, want empty", got)
	}
}

func TestNorm(t *testing.T) {
	if got, want := norm("  Low \n FODMAP\t Pancakes  "), "Low FODMAP Pancakes"; got != want {
		t.Errorf("norm() = %q, want %q", got, want)
	}
}
