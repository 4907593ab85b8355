// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/ericjlubbers/colorado-holiday-markets-2025/internal/adapters/repository"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/calendar"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/dateparse"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/ingest"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/logger"
)

// SheetFetcher retrieves the raw CSV body. The ingest.Fetcher satisfies
// this; tests substitute their own.
type SheetFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Query carries one request's filter and sort parameters. Each query is
// applied through the catalog's mutation contract before the view is read.
type Query struct {
	Search     string
	City       string
	DateFilter repository.DateFilter
	SortKey    repository.SortKey
	Ascending  bool
}

// Service owns the ingestion pipeline and the catalog, and exposes the
// query surface the HTTP handlers consume.
type Service struct {
	mu sync.Mutex

	// queryMu serializes one request's mutator sequence and view read so
	// concurrent requests cannot interleave their filters on the catalog.
	queryMu sync.Mutex

	catalog *repository.Catalog
	fetcher SheetFetcher
	builder *ingest.Builder

	sheetID     string
	urlTemplate string
	seasonYear  int
	retryCount  int
	retryWait   time.Duration
	timeout     time.Duration
	clock       func() time.Time

	started bool
	loadErr error

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithSheetID sets the spreadsheet id to ingest.
func WithSheetID(id string) Option {
	return func(s *Service) {
		s.sheetID = id
	}
}

// WithURLTemplate sets the CSV export URL template.
func WithURLTemplate(tmpl string) Option {
	return func(s *Service) {
		if tmpl != "" {
			s.urlTemplate = tmpl
		}
	}
}

// WithSeasonYear anchors date parsing and the calendar grid.
func WithSeasonYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.seasonYear = year
		}
	}
}

// WithFetchRetry tunes startup fetch retries.
func WithFetchRetry(count int, wait time.Duration) Option {
	return func(s *Service) {
		if count >= 0 {
			s.retryCount = count
		}
		if wait > 0 {
			s.retryWait = wait
		}
	}
}

// WithFetchTimeout bounds one fetch attempt.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithFetcher substitutes the sheet fetcher. Used by tests.
func WithFetcher(f SheetFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithClock sets the reference clock handed to the catalog.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seasonYear: 2025,
		retryCount: 3,
		retryWait:  2 * time.Second,
		timeout:    15 * time.Second,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the components and performs the one-shot ingestion. A failed
// fetch does not kill the process: the catalog stays empty, the failure is
// remembered, and health reports degraded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	dates := dateparse.New(
		dateparse.WithYear(s.seasonYear),
		dateparse.WithLogger(s.logger.Named("dateparse")),
	)
	s.builder = ingest.NewBuilder(
		ingest.WithDateParser(dates),
		ingest.WithBuilderLogger(s.logger.Named("ingest")),
	)
	if s.fetcher == nil {
		s.fetcher = ingest.NewFetcher(
			ingest.WithSheetID(s.sheetID),
			ingest.WithURLTemplate(s.urlTemplate),
			ingest.WithRetry(s.retryCount, s.retryWait),
			ingest.WithTimeout(s.timeout),
			ingest.WithFetcherLogger(s.logger.Named("ingest")),
		)
	}
	s.catalog = repository.New(repository.WithClock(s.clock))
	s.started = true

	body, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.loadErr = err
		s.logger.Error(ctx, "sheet ingestion failed; serving empty catalog",
			logger.Error(err),
		)
		return nil
	}

	records := s.builder.BuildRecords(ctx, body)
	if err := s.catalog.Load(ctx, records); err != nil {
		s.loadErr = err
		return nil
	}

	s.logger.Info(ctx, "market catalog loaded",
		logger.Int("records", len(records)),
		logger.Int("cities", len(s.catalog.Cities(ctx))),
		logger.Int("seasonYear", s.seasonYear),
	)
	return nil
}

// Stop releases the service. The catalog has no background work, so this
// only flips the lifecycle flag.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Markets applies the query through the catalog contract and returns the
// resulting view.
func (s *Service) Markets(ctx context.Context, q Query) ([]model.MarketRecord, error) {
	s.queryMu.Lock()
	defer s.queryMu.Unlock()

	s.catalog.SetSearch(ctx, q.Search)
	s.catalog.SetCityFilter(ctx, q.City)
	if err := s.catalog.SetDateFilter(ctx, q.DateFilter); err != nil {
		return nil, err
	}
	key := q.SortKey
	if key == "" {
		key = repository.SortByName
	}
	if err := s.catalog.SetSort(ctx, key, q.Ascending); err != nil {
		return nil, err
	}
	return s.catalog.View(ctx), nil
}

// Market returns one record with its detail-panel calendar grids.
func (s *Service) Market(ctx context.Context, id string) (model.MarketRecord, []calendar.MonthGrid, error) {
	rec, err := s.catalog.ByID(ctx, id)
	if err != nil {
		return model.MarketRecord{}, nil, err
	}
	grids := calendar.Grid(rec.Dates, s.catalog.Today(ctx), s.seasonYear, calendar.SeasonMonths())
	return rec, grids, nil
}

// Cities returns the distinct sorted city list for the filter control.
func (s *Service) Cities(ctx context.Context) []string {
	return s.catalog.Cities(ctx)
}

// Healthy reports whether ingestion succeeded. A false value means the
// catalog is permanently empty for this session.
func (s *Service) Healthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && s.loadErr == nil
}

// LoadError returns the ingestion failure, if any.
func (s *Service) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	loadErr := s.loadErr
	s.mu.Unlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     started,
		"season_year": s.seasonYear,
	}
	if s.catalog != nil {
		stats["records"] = s.catalog.Size(ctx)
		stats["cities"] = len(s.catalog.Cities(ctx))
		stats["loaded"] = s.catalog.Loaded(ctx)
	}
	if loadErr != nil {
		stats["load_error"] = loadErr.Error()
	}
	return stats
}
