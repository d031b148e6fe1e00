// Package listrecipes handles GET /api/recipes: a paginated catalogue
// listing with optional case-insensitive title search.
package listrecipes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/httputil"
)

const defaultTake = 20

func NewHandler(store *cookbookdb.Store) *Handler {
	return &Handler{store: store}
}

type Handler struct {
	store *cookbookdb.Store
}

type response struct {
	Recipes []*cookbookdb.Recipe `json:"recipes"`
	Page    int                  `json:"page"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	term := q.Get("term")
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	recipes, err := h.store.ListRecipes(ctx, term, page, defaultTake)
	if err != nil {
		slog.ErrorContext(ctx, "listrecipes: list recipes", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "list recipes")
		return
	}

	if recipes == nil {
		recipes = []*cookbookdb.Recipe{}
	}
	httputil.WriteJSON(w, http.StatusOK, &response{
		Recipes: recipes,
		Page:    page,
	})
}
