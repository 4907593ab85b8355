// Package repository holds the ingested market set and computes the
// filtered, sorted view the display layer renders.
package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/metrics"
)

// DateFilter selects which reference window records must be open in.
type DateFilter string

// Date filter kinds. Empty passes everything.
const (
	DateFilterNone     DateFilter = ""
	DateFilterToday    DateFilter = "today"
	DateFilterTomorrow DateFilter = "tomorrow"
	DateFilterWeekend  DateFilter = "weekend"
)

// SortKey selects the string key the view is ordered by.
type SortKey string

// Sort keys.
const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortByCity SortKey = "city"
)

// tomorrowOffset is deliberately elapsed-time arithmetic: exactly 24 hours
// after the reference instant, not a calendar AddDate. DST-naive and
// acceptable for this domain.
const tomorrowOffset = 86_400_000 * time.Millisecond

// daysPerWeek is used for the next-Saturday computation.
const daysPerWeek = 7

// Catalog is the single per-session holder of all ingested records plus
// the current filter/sort state and its derived view. Records are loaded
// exactly once; the view is fully recomputed, never patched, on every
// state change.
type Catalog struct {
	mu sync.RWMutex

	records []model.MarketRecord
	loaded  bool

	search     string
	cityFilter string
	dateFilter DateFilter
	sortKey    SortKey
	sortAsc    bool

	view []model.MarketRecord

	// Reference dates are fixed at construction.
	today        model.Date
	tomorrow     model.Date
	weekendStart model.Date
	weekendEnd   model.Date
}

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithClock sets the reference clock, fixed at construction time.
// Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.setReferenceDates(now())
		}
	}
}

// New constructs an empty Catalog whose reference dates are anchored to
// the current time. The default sort is by name ascending.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		sortKey: SortByName,
		sortAsc: true,
	}
	c.setReferenceDates(time.Now())
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) setReferenceDates(now time.Time) {
	c.today = model.DateOf(now)
	c.tomorrow = model.DateOf(now.Add(tomorrowOffset))

	// Next Saturday: when today already is Saturday the window jumps a
	// full week forward, not zero days.
	daysUntilSaturday := (int(time.Saturday) - int(c.today.Weekday()) + daysPerWeek) % daysPerWeek
	if daysUntilSaturday == 0 {
		daysUntilSaturday = daysPerWeek
	}
	c.weekendStart = model.DateOf(c.today.Time().AddDate(0, 0, daysUntilSaturday))
	c.weekendEnd = c.weekendStart.Next()
}

// Load performs the one-time population of the catalog and computes the
// initial view. A second load is rejected; replacing a populated catalog
// is not supported.
func (c *Catalog) Load(ctx context.Context, records []model.MarketRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return ErrAlreadyLoaded
	}
	c.records = records
	c.loaded = true

	metrics.UpdateCatalogSize(len(c.records))
	metrics.UpdateCityCount(len(c.citiesLocked()))

	c.recompute()
	return nil
}

// SetSearch updates the free-text filter and recomputes the view.
func (c *Catalog) SetSearch(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = text
	c.recompute()
}

// SetCityFilter updates the exact-match city filter and recomputes the view.
func (c *Catalog) SetCityFilter(ctx context.Context, city string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cityFilter = city
	c.recompute()
}

// SetDateFilter updates the date filter and recomputes the view.
func (c *Catalog) SetDateFilter(ctx context.Context, kind DateFilter) error {
	switch kind {
	case DateFilterNone, DateFilterToday, DateFilterTomorrow, DateFilterWeekend:
	default:
		return ErrInvalidDateFilter
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dateFilter = kind
	c.recompute()
	return nil
}

// SetSort updates the sort key and direction and recomputes the view.
func (c *Catalog) SetSort(ctx context.Context, key SortKey, ascending bool) error {
	switch key {
	case SortByName, SortByDate, SortByCity:
	default:
		return ErrInvalidSortKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey = key
	c.sortAsc = ascending
	c.recompute()
	return nil
}

// View returns the current filtered, sorted view.
func (c *Catalog) View(ctx context.Context) []model.MarketRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.MarketRecord, len(c.view))
	copy(out, c.view)
	return out
}

// ByID looks a record up by its stable identifier across all records,
// filtered or not.
func (c *Catalog) ByID(ctx context.Context, id string) (model.MarketRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.ID == id {
			return r, nil
		}
	}
	return model.MarketRecord{}, ErrNotFound
}

// Cities returns the distinct, sorted city values across all records,
// for populating the filter control.
func (c *Catalog) Cities(ctx context.Context) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.citiesLocked()
}

func (c *Catalog) citiesLocked() []string {
	seen := make(map[string]struct{}, len(c.records))
	cities := make([]string, 0, len(c.records))
	for _, r := range c.records {
		if _, dup := seen[r.City]; dup {
			continue
		}
		seen[r.City] = struct{}{}
		cities = append(cities, r.City)
	}
	sort.Strings(cities)
	return cities
}

// Size returns the number of records held, ignoring filters.
func (c *Catalog) Size(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Loaded reports whether the one-time population happened.
func (c *Catalog) Loaded(ctx context.Context) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Today returns the reference date fixed at construction.
func (c *Catalog) Today(ctx context.Context) model.Date {
	return c.today
}

// recompute derives the view from scratch: conjunctive filters in record
// order, then a stable sort. Callers must hold the write lock.
func (c *Catalog) recompute() {
	start := time.Now()

	view := make([]model.MarketRecord, 0, len(c.records))
	for _, r := range c.records {
		if c.matches(r) {
			view = append(view, r)
		}
	}

	key := c.sortKeyValue
	sort.SliceStable(view, func(i, j int) bool {
		if c.sortAsc {
			return key(view[i]) < key(view[j])
		}
		return key(view[i]) > key(view[j])
	})

	c.view = view
	metrics.UpdateViewSize(len(view))
	metrics.RecordViewRecompute(float64(time.Since(start).Microseconds()) / 1000.0)
}

// matches applies the conjunctive filter set to one record.
func (c *Catalog) matches(r model.MarketRecord) bool {
	if c.search != "" {
		needle := strings.ToLower(c.search)
		if !strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Address), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			return false
		}
	}

	if c.cityFilter != "" && r.City != c.cityFilter {
		return false
	}

	switch c.dateFilter {
	case DateFilterNone:
	case DateFilterToday:
		if !r.OpenOn(c.today) {
			return false
		}
	case DateFilterTomorrow:
		if !r.OpenOn(c.tomorrow) {
			return false
		}
	case DateFilterWeekend:
		if !r.OpenOn(c.weekendStart) && !r.OpenOn(c.weekendEnd) {
			return false
		}
	}
	return true
}

// sortKeyValue extracts the string the view is ordered by.
func (c *Catalog) sortKeyValue(r model.MarketRecord) string {
	switch c.sortKey {
	case SortByDate:
		return strings.ToLower(r.RawDateText)
	case SortByCity:
		return strings.ToLower(r.City)
	default:
		return r.Name
	}
}
