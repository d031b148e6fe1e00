// Package rejectimport handles POST /api/imports/reject: mark a partial
// import as rejected so it no longer shows up as pending repair.
package rejectimport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/httputil"
)

func NewHandler(store *cookbookdb.Store) *Handler {
	return &Handler{store: store}
}

type Handler struct {
	store *cookbookdb.Store
}

type request struct {
	ID int64 `json:"id"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "rejectimport: missing id")
		return
	}

	if err := h.store.RejectImport(ctx, req.ID); err != nil {
		if errors.Is(err, cookbookdb.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "import not found")
			return
		}
		slog.ErrorContext(ctx, "rejectimport: reject import", "id", req.ID, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "reject import")
		return
	}

	rec, err := h.store.GetImport(ctx, req.ID)
	if err != nil {
		slog.ErrorContext(ctx, "rejectimport: reload import", "id", req.ID, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "reload import")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}
