// Package importer runs the recipe import pipelines: fetch a page, dispatch
// it to the right site parser, validate the raw extraction and classify the
// outcome as success, partial or error.
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/source"
)

// Status classifies a pipeline outcome. Exactly one of the three applies to
// every invocation that did not fail at the transport level.
type Status string

const (
	// StatusSuccess means validation passed and the result is complete.
	StatusSuccess Status = "success"
	// StatusPartial means extraction ran but validation failed; the raw
	// data and its field errors are kept for manual repair.
	StatusPartial Status = "partial"
	// StatusError means no parser applied (or, for listings, the page does
	// not exist); there is nothing structured enough to keep.
	StatusError Status = "error"
)

// ImportResult is the tri-state outcome of importing one detail page.
type ImportResult struct {
	URL    string `json:"url"`
	Status Status `json:"status"`

	// Recipe is set on success only, and always satisfies the schema.
	Recipe *cookbookdb.Recipe `json:"recipe,omitempty"`

	// Draft and Errors are set on partial outcomes: the best-effort raw
	// extraction plus what is wrong with it.
	Draft  *source.RecipeDraft     `json:"draft,omitempty"`
	Errors []cookbookdb.FieldError `json:"errors,omitempty"`

	// Message describes an error outcome.
	Message string `json:"message,omitempty"`
}

// ListResult is the tri-state outcome of reading one listing page.
type ListResult struct {
	URL    string `json:"url"`
	Status Status `json:"status"`

	// NotFound is set when the page itself does not exist (HTTP 404), the
	// expected end-of-pagination signal while batch importing.
	NotFound bool `json:"notFound,omitempty"`

	// Leads are the leads that passed validation; on partial outcomes the
	// invalid ones are dropped and reported in Errors.
	Leads  []source.LeadDraft      `json:"leads"`
	Errors []cookbookdb.FieldError `json:"errors,omitempty"`
}

// Importer wires a fetcher to the parser registry.
type Importer struct {
	fetcher  Fetcher
	registry *source.Registry
}

func New(fetcher Fetcher, registry *source.Registry) *Importer {
	return &Importer{fetcher: fetcher, registry: registry}
}

// ParseRecipe fetches url, extracts a recipe with the first applicable site
// parser and validates it. A non-nil error means the fetch itself failed
// and the invocation is fatal; retrying is the caller's decision.
func (i *Importer) ParseRecipe(ctx context.Context, url string) (ImportResult, error) {
	doc, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		return ImportResult{}, err
	}

	in := source.Input{Document: doc, URL: url}
	parser := i.registry.FindDetailParser(in)
	if parser == nil {
		return ImportResult{URL: url, Status: StatusError, Message: "no parser found"}, nil
	}

	draft := parser.Parse(in)
	if errs := fieldErrors(&draft); len(errs) > 0 {
		return ImportResult{URL: url, Status: StatusPartial, Draft: &draft, Errors: errs}, nil
	}
	return ImportResult{URL: url, Status: StatusSuccess, Recipe: draft.Recipe()}, nil
}

// ListRecipes fetches a listing page and extracts recipe leads. A 404 is a
// clean "no page" outcome rather than an error return, since pagination
// routinely walks past the last real page.
func (i *Importer) ListRecipes(ctx context.Context, url string) (ListResult, error) {
	doc, err := i.fetcher.Fetch(ctx, url)
	if errors.Is(err, ErrPageNotFound) {
		return ListResult{URL: url, Status: StatusError, NotFound: true}, nil
	}
	if err != nil {
		return ListResult{}, err
	}

	in := source.Input{Document: doc, URL: url}
	parser := i.registry.FindListParser(in)
	if parser == nil {
		return ListResult{URL: url, Status: StatusError}, nil
	}

	var leads []source.LeadDraft
	var errs []cookbookdb.FieldError
	for idx, lead := range parser.List(in) {
		ferrs := fieldErrors(&lead)
		if len(ferrs) == 0 {
			leads = append(leads, lead)
			continue
		}
		for _, fe := range ferrs {
			errs = append(errs, cookbookdb.FieldError{
				Path:    fmt.Sprintf("leads[%d].%s", idx, fe.Path),
				Message: fe.Message,
			})
		}
	}

	status := StatusSuccess
	if len(errs) > 0 {
		status = StatusPartial
	}
	return ListResult{URL: url, Status: status, Leads: leads, Errors: errs}, nil
}
