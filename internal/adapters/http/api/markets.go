// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	repository "github.com/ericjlubbers/colorado-holiday-markets-2025/internal/adapters/repository"
)

// MarketsHandler serves the list view and per-market detail.
type MarketsHandler struct {
	deps Dependencies
}

// NewMarketsHandler creates a new markets handler.
func NewMarketsHandler(deps Dependencies) *MarketsHandler {
	return &MarketsHandler{deps: deps}
}

// HandleList handles GET /markets requests. Query parameters:
// search, city, date (today|tomorrow|weekend), sort (name|date|city),
// order (asc|desc).
func (h *MarketsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	markets, err := h.deps.Markets(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidDateFilter),
			errors.Is(err, repository.ErrInvalidSortKey):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal", err)
		}
		return
	}

	resp := marketListResponse{
		Markets: make([]marketResponse, len(markets)),
		Total:   len(markets),
	}
	for i, m := range markets {
		resp.Markets[i] = toMarketResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDetail handles GET /markets/{id} requests.
func (h *MarketsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/markets/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	rec, grids, err := h.deps.Market(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}

	writeJSON(w, http.StatusOK, marketDetailResponse{
		Market:   toMarketResponse(rec),
		Calendar: grids,
	})
}
