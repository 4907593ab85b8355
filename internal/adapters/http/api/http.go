// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	repository "github.com/ericjlubbers/colorado-holiday-markets-2025/internal/adapters/repository"
	app "github.com/ericjlubbers/colorado-holiday-markets-2025/internal/app"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/calendar"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Markets applies filter/sort parameters and returns the resulting view.
	Markets(ctx context.Context, q app.Query) ([]model.MarketRecord, error)

	// Market returns one record plus its detail-panel calendar grids.
	Market(ctx context.Context, id string) (model.MarketRecord, []calendar.MonthGrid, error)

	// Cities lists the distinct city values for the filter control.
	Cities(ctx context.Context) []string

	// Healthy reports whether the one-shot ingestion succeeded.
	Healthy() bool

	// LoadError exposes the ingestion failure, if any.
	LoadError() error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	marketsHandler *MarketsHandler
	citiesHandler  *CitiesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		marketsHandler: NewMarketsHandler(deps),
		citiesHandler:  NewCitiesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/markets", MetricsMiddleware(s.marketsHandler.HandleList, "markets"))
	mux.HandleFunc("/markets/", MetricsMiddleware(s.marketsHandler.HandleDetail, "market_detail"))
	mux.HandleFunc("/cities", MetricsMiddleware(s.citiesHandler.HandleCities, "cities"))
}

// marketResponse is the wire shape of one record in the list view. It
// carries everything the marker layer ({id, latitude, longitude}) and the
// table ({name, date_text, city}) consume.
type marketResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Region      string   `json:"region"`
	City        string   `json:"city"`
	ZipCode     string   `json:"zip_code,omitempty"`
	Address     string   `json:"address,omitempty"`
	DateText    string   `json:"date_text,omitempty"`
	Cost        string   `json:"cost"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	Dates       []string `json:"dates"`
}

func toMarketResponse(r model.MarketRecord) marketResponse {
	dates := make([]string, len(r.Dates))
	for i, d := range r.Dates {
		dates[i] = d.String()
	}
	return marketResponse{
		ID:          r.ID,
		Name:        r.Name,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Region:      r.Region,
		City:        r.City,
		ZipCode:     r.ZipCode,
		Address:     r.Address,
		DateText:    r.RawDateText,
		Cost:        r.Cost,
		Website:     r.Website,
		Description: r.Description,
		Dates:       dates,
	}
}

// marketListResponse is the GET /markets payload.
type marketListResponse struct {
	Markets []marketResponse `json:"markets"`
	Total   int              `json:"total"`
}

// marketDetailResponse is the GET /markets/{id} payload.
type marketDetailResponse struct {
	Market   marketResponse       `json:"market"`
	Calendar []calendar.MonthGrid `json:"calendar"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// parseQuery maps request query parameters onto the catalog contract.
// Unknown date/sort values surface as a client error instead of being
// silently ignored.
func parseQuery(r *http.Request) (app.Query, error) {
	q := app.Query{
		Search:     r.URL.Query().Get("search"),
		City:       r.URL.Query().Get("city"),
		DateFilter: repository.DateFilter(r.URL.Query().Get("date")),
		SortKey:    repository.SortKey(r.URL.Query().Get("sort")),
		Ascending:  true,
	}
	switch r.URL.Query().Get("order") {
	case "", "asc":
	case "desc":
		q.Ascending = false
	default:
		return app.Query{}, ErrBadRequest
	}
	if q.SortKey == "" {
		q.SortKey = repository.SortByName
	}
	return q, nil
}
