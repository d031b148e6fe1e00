// Package listimports handles GET /api/imports: a paginated view of the
// import audit trail, filterable by status and free-text term.
package listimports

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/httputil"
)

const (
	defaultTake = 20
	maxTake     = 100
)

func NewHandler(store *cookbookdb.Store) *Handler {
	return &Handler{store: store}
}

type Handler struct {
	store *cookbookdb.Store
}

type meta struct {
	Count int `json:"count"`
	Pages int `json:"pages"`
}

type response struct {
	Meta    meta                       `json:"meta"`
	Imports []*cookbookdb.ImportRecord `json:"imports"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	status := q.Get("status")
	term := q.Get("term")
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	take, _ := strconv.Atoi(q.Get("take"))
	if take < 1 || take > maxTake {
		take = defaultTake
	}

	imports, err := h.store.ListImports(ctx, status, term, page, take)
	if err != nil {
		slog.ErrorContext(ctx, "listimports: list imports", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "list imports")
		return
	}
	count, err := h.store.CountImports(ctx, status, term)
	if err != nil {
		slog.ErrorContext(ctx, "listimports: count imports", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "count imports")
		return
	}

	if imports == nil {
		imports = []*cookbookdb.ImportRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, &response{
		Meta:    meta{Count: count, Pages: (count + take - 1) / take},
		Imports: imports,
	})
}
