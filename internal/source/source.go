// Package source holds the site-specific structural parsers that turn HTML
// documents from supported recipe sites into raw recipe extractions, plus
// the registry that dispatches a document to the right parser.
package source

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Input is one fetched page handed to a parser.
type Input struct {
	Document *goquery.Document
	URL      string
}

// Parser extracts recipes from one site's page templates. Parsers are
// permissive: a selector miss degrades to an empty or zero field, never an
// error. Completeness is decided downstream by validation.
type Parser interface {
	// Name identifies the parser, e.g. "fodmap-formula-new".
	Name() string

	// CanParse reports whether in is a detail page this parser understands.
	CanParse(in Input) bool

	// CanList reports whether in is a listing page this parser understands.
	CanList(in Input) bool

	// List extracts recipe leads from a listing page.
	List(in Input) []LeadDraft

	// Parse extracts a raw, possibly incomplete recipe from a detail page.
	Parse(in Input) RecipeDraft
}

var spaceRe = regexp.MustCompile(`\s+`)

// norm trims s and collapses internal whitespace, newlines and tabs.
func norm(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

var leadingNonDigitsRe = regexp.MustCompile(`^\D*`)

// parseServings reads the first numeric token of s as a serving count.
// Anything unparseable yields 0, an intentionally invalid sentinel that
// fails the servings >= 1 validation.
func parseServings(s string) int {
	s = leadingNonDigitsRe.ReplaceAllString(norm(s), "")
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006-01-02",
	time.RFC3339,
}

// parseDate parses loose human-readable date text after stripping known
// label prefixes. Absent or unparseable text yields nil.
func parseDate(s string) *time.Time {
	s = norm(s)
	for _, prefix := range []string{"Published", "Updated", "Modified"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// imageBlocklist matches srcs of known non-content images: icons, social
// share badges and site logos.
var imageBlocklist = []string{"svg", "pinterest.", "facebook.", "fb.", "logo"}

// contentImage scans every <img> on the page and returns the src of the
// first that is not blocklisted and at least as wide as it is tall (narrow
// sidebar icons are portrait). Returns "" when nothing qualifies.
func contentImage(doc *goquery.Document) string {
	var src string
	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		s := strings.ToLower(img.AttrOr("src", ""))
		if s == "" {
			return true
		}
		for _, blocked := range imageBlocklist {
			if strings.Contains(s, blocked) {
				return true
			}
		}
		w, _ := strconv.Atoi(img.AttrOr("width", "0"))
		h, _ := strconv.Atoi(img.AttrOr("height", "0"))
		if w < h {
			return true
		}
		src = img.AttrOr("src", "")
		return false
	})
	return src
}

// stripLabel removes a leading label such as "Total Time:" from s.
func stripLabel(s, label string) string {
	return norm(strings.TrimPrefix(norm(s), label))
}

// texts collects the normalized text of every node matched by selector.
func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, el *goquery.Selection) {
		out = append(out, norm(el.Text()))
	})
	return out
}
