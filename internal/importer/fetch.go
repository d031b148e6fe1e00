package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// ErrPageNotFound reports that a fetch returned HTTP 404. For listing pages
// this is the normal end-of-pagination signal.
var ErrPageNotFound = errors.New("importer: page not found")

// Fetcher retrieves a URL and parses its body into a queryable document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// CollyFetcher fetches pages with a colly collector.
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewCollyFetcher returns a fetcher identifying itself as userAgent and
// giving up on requests after timeout.
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	return &CollyFetcher{userAgent: userAgent, timeout: timeout}
}

// Fetch retrieves url and parses the body. Non-2xx responses are errors;
// a 404 specifically is ErrPageNotFound.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	// A fresh collector per request; collectors accumulate visit state.
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.StdlibContext(ctx),
	)
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}

	var body []byte
	var status int
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(url); err != nil {
		if status == http.StatusNotFound {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("importer: fetch %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("importer: parse page %s: %w", url, err)
	}
	return doc, nil
}
