package importer

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/cenkalti/backoff/v4"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/source"
)

// Batch drives unattended bulk ingestion for one source at a time. Pages
// and leads are processed strictly in order with no concurrent fetches;
// politeness to the scraped sites matters more than throughput here.
type Batch struct {
	Store    *cookbookdb.Store
	Importer *Importer

	// DryRun performs every step except persistence writes.
	DryRun bool

	// MaxRetries bounds the backoff retries for a failed detail fetch.
	// The pipelines themselves never retry.
	MaxRetries uint64
}

// Run imports every recipe of src not yet persisted. A single bad lead
// never aborts the run; a listing failure other than end-of-pagination
// does, since without leads there is nothing to import.
func (b *Batch) Run(ctx context.Context, src cookbookdb.Source) error {
	seqs := PageSequences(src)
	if len(seqs) == 0 {
		return fmt.Errorf("batch: unknown source %q", src)
	}

	slog.InfoContext(ctx, "batch: starting import", "source", src, "dryRun", b.DryRun)
	for _, pages := range seqs {
		if err := b.runSequence(ctx, pages); err != nil {
			return err
		}
	}
	slog.InfoContext(ctx, "batch: finished", "source", src)
	return nil
}

func (b *Batch) runSequence(ctx context.Context, pages iter.Seq[string]) error {
	for pageURL := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		end, err := b.importPage(ctx, pageURL)
		if err != nil {
			return err
		}
		if end {
			return nil
		}
	}
	return nil
}

// importPage lists one page and imports its new leads. end reports that
// pagination walked past the last real page.
func (b *Batch) importPage(ctx context.Context, pageURL string) (end bool, err error) {
	listing, err := b.Importer.ListRecipes(ctx, pageURL)
	if err != nil {
		return false, fmt.Errorf("batch: list %s: %w", pageURL, err)
	}
	if listing.NotFound {
		slog.InfoContext(ctx, "batch: end of listing", "page", pageURL)
		return true, nil
	}
	if listing.Status == StatusError {
		return false, fmt.Errorf("batch: no listing parser for %s", pageURL)
	}
	if listing.Status == StatusPartial {
		for _, fe := range listing.Errors {
			slog.WarnContext(ctx, "batch: dropped invalid lead", "page", pageURL, "path", fe.Path, "message", fe.Message)
		}
	}

	slog.InfoContext(ctx, "batch: found leads", "page", pageURL, "count", len(listing.Leads))
	for _, lead := range listing.Leads {
		b.importLead(ctx, lead)
	}
	return false, nil
}

func (b *Batch) importLead(ctx context.Context, lead source.LeadDraft) {
	_, err := b.Store.FindRecipeBySourceURL(ctx, lead.URL)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "batch: skipped: already imported", "url", lead.URL)
		return
	case !errors.Is(err, cookbookdb.ErrNotFound):
		slog.ErrorContext(ctx, "batch: dedup lookup failed", "url", lead.URL, "error", err)
		return
	}

	res, err := b.parseWithRetry(ctx, lead.URL)
	if err != nil {
		slog.ErrorContext(ctx, "batch: skipped: fetch failed", "url", lead.URL, "error", err)
		return
	}

	switch res.Status {
	case StatusError:
		slog.WarnContext(ctx, "batch: skipped: no parser found", "url", lead.URL)

	case StatusPartial:
		for _, fe := range res.Errors {
			slog.WarnContext(ctx, "batch: partial import", "url", lead.URL, "path", fe.Path, "message", fe.Message)
		}
		if b.DryRun {
			return
		}
		audit := &cookbookdb.ImportRecord{
			URL:    lead.URL,
			Title:  lead.Title,
			Status: cookbookdb.ImportStatusPartial,
			Errors: res.Errors,
		}
		if err := b.Store.UpsertImportAudit(ctx, audit); err != nil {
			slog.ErrorContext(ctx, "batch: record partial import", "url", lead.URL, "error", err)
		}

	case StatusSuccess:
		if b.DryRun {
			slog.InfoContext(ctx, "batch: imported (dry run)", "url", lead.URL, "title", res.Recipe.Title)
			return
		}
		if err := b.Store.CreateRecipeWithSets(ctx, res.Recipe); err != nil {
			slog.ErrorContext(ctx, "batch: persist recipe", "url", lead.URL, "error", err)
			return
		}
		audit := &cookbookdb.ImportRecord{
			URL:    lead.URL,
			Title:  lead.Title,
			Status: cookbookdb.ImportStatusSuccess,
		}
		if err := b.Store.UpsertImportAudit(ctx, audit); err != nil {
			slog.ErrorContext(ctx, "batch: record import", "url", lead.URL, "error", err)
		}
		slog.InfoContext(ctx, "batch: imported", "url", lead.URL, "title", res.Recipe.Title)
	}
}

// parseWithRetry retries transport failures with bounded exponential
// backoff. A 404 detail page is permanent; retrying it cannot help.
func (b *Batch) parseWithRetry(ctx context.Context, url string) (ImportResult, error) {
	var res ImportResult
	op := func() error {
		var err error
		res, err = b.Importer.ParseRecipe(ctx, url)
		if errors.Is(err, ErrPageNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), b.MaxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return ImportResult{}, err
	}
	return res, nil
}
