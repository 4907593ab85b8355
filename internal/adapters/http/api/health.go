package api

import "net/http"

// HealthHandler reports liveness plus the session's ingestion state.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HandleHealth handles GET /healthz requests. A degraded status means the
// startup fetch failed and the catalog is empty for this session.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.deps.Healthy() {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
		return
	}

	resp := healthResponse{Status: "degraded"}
	if err := h.deps.LoadError(); err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusServiceUnavailable, resp)
}
