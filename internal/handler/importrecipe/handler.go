// Package importrecipe handles POST /api/import: scrape a recipe page,
// validate it, and either store the recipe or record a partial import
// for manual repair.
package importrecipe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/httputil"
	"github.com/ysads/cookbook/internal/importer"
)

func NewHandler(imp *importer.Importer, store *cookbookdb.Store) *Handler {
	return &Handler{
		importer: imp,
		store:    store,
	}
}

type Handler struct {
	importer *importer.Importer
	store    *cookbookdb.Store
}

type request struct {
	URL string `json:"url"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		httputil.WriteError(w, http.StatusBadRequest, "importrecipe: missing url")
		return
	}

	if existing, err := h.store.FindRecipeBySourceURL(ctx, req.URL); err == nil {
		httputil.WriteJSON(w, http.StatusConflict, &importer.ImportResult{
			URL:     req.URL,
			Status:  importer.StatusError,
			Recipe:  existing,
			Message: "recipe already imported",
		})
		return
	} else if !errors.Is(err, cookbookdb.ErrNotFound) {
		slog.ErrorContext(ctx, "importrecipe: lookup existing recipe", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "lookup existing recipe")
		return
	}

	res, err := h.importer.ParseRecipe(ctx, req.URL)
	if err != nil {
		slog.ErrorContext(ctx, "importrecipe: fetch page", "url", req.URL, "error", err)
		httputil.WriteError(w, http.StatusBadGateway, "fetch page")
		return
	}

	switch res.Status {
	case importer.StatusSuccess:
		if err := h.store.CreateRecipeWithSets(ctx, res.Recipe); err != nil {
			slog.ErrorContext(ctx, "importrecipe: store recipe", "url", req.URL, "error", err)
			httputil.WriteError(w, http.StatusInternalServerError, "store recipe")
			return
		}
		if err := h.upsertAudit(ctx, res, cookbookdb.ImportStatusSuccess); err != nil {
			slog.ErrorContext(ctx, "importrecipe: record audit", "url", req.URL, "error", err)
		}
		httputil.WriteJSON(w, http.StatusCreated, res)
	case importer.StatusPartial:
		if err := h.upsertAudit(ctx, res, cookbookdb.ImportStatusPartial); err != nil {
			slog.ErrorContext(ctx, "importrecipe: record audit", "url", req.URL, "error", err)
			httputil.WriteError(w, http.StatusInternalServerError, "record audit")
			return
		}
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, res)
	default:
		httputil.WriteJSON(w, http.StatusBadRequest, res)
	}
}

func (h *Handler) upsertAudit(ctx context.Context, res importer.ImportResult, status cookbookdb.ImportStatus) error {
	title := ""
	switch {
	case res.Recipe != nil:
		title = res.Recipe.Title
	case res.Draft != nil:
		title = res.Draft.Title
	}
	return h.store.UpsertImportAudit(ctx, &cookbookdb.ImportRecord{
		URL:    res.URL,
		Title:  title,
		Status: status,
		Errors: res.Errors,
	})
}
