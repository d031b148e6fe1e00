// Package getrecipe handles GET /api/recipes/{id}.
package getrecipe

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/httputil"
)

func NewHandler(store *cookbookdb.Store) *Handler {
	return &Handler{store: store}
}

type Handler struct {
	store *cookbookdb.Store
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "getrecipe: malformed id")
		return
	}

	recipe, err := h.store.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, cookbookdb.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "recipe not found")
			return
		}
		slog.ErrorContext(ctx, "getrecipe: get recipe", "id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "get recipe")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, recipe)
}
