package api

import "net/http"

// CitiesHandler serves the distinct city list for the filter control.
type CitiesHandler struct {
	deps Dependencies
}

// NewCitiesHandler creates a new cities handler.
func NewCitiesHandler(deps Dependencies) *CitiesHandler {
	return &CitiesHandler{deps: deps}
}

type citiesResponse struct {
	Cities []string `json:"cities"`
}

// HandleCities handles GET /cities requests.
func (h *CitiesHandler) HandleCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	cities := h.deps.Cities(r.Context())
	if cities == nil {
		cities = []string{}
	}
	writeJSON(w, http.StatusOK, citiesResponse{Cities: cities})
}
