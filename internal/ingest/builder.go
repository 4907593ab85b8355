package ingest

import (
	"context"
	"strconv"
	"strings"

	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/address"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/csvline"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/dateparse"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/logger"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/metrics"
)

// Positional column layout of the sheet. The header row is skipped and
// never validated; columns are matched by index alone.
const (
	colName = iota
	colLatitude
	colLongitude
	colRegion
	colZip
	colAddress
	colDateText
	colCost
	colWebsite
	colDescription
)

// minRowTokens is the structural floor: name plus both coordinates.
const minRowTokens = 3

// Field defaults for blank cells.
const (
	defaultRegion = "Unknown"
	defaultCost   = "Free"
)

// Row-skip reasons reported to metrics.
const (
	skipTooFewColumns = "too_few_columns"
	skipMissingName   = "missing_name"
	skipBadLatitude   = "bad_latitude"
	skipBadLongitude  = "bad_longitude"
)

// Builder turns raw CSV text into validated market records.
type Builder struct {
	dates *dateparse.Parser
	log   logger.Logger
}

// BuilderOption applies a configuration option to the Builder.
type BuilderOption func(*Builder)

// WithDateParser sets the schedule parser used for the date-text column.
func WithDateParser(p *dateparse.Parser) BuilderOption {
	return func(b *Builder) {
		if p != nil {
			b.dates = p
		}
	}
}

// WithBuilderLogger sets the logger used for row diagnostics.
func WithBuilderLogger(log logger.Logger) BuilderOption {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBuilder constructs a Builder with default configuration.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		dates: dateparse.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildRecords parses the full CSV body into market records, preserving
// row order. Malformed rows are skipped one by one; a row survives only
// with a non-empty name and two parseable coordinates. Everything else
// degrades to defaults instead of rejecting the row.
func (b *Builder) BuildRecords(ctx context.Context, csvText string) []model.MarketRecord {
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	if len(lines) < 2 {
		return nil
	}

	records := make([]model.MarketRecord, 0, len(lines)-1)
	for n, line := range lines[1:] {
		rec, reason := b.buildRow(ctx, line)
		if reason != "" {
			metrics.RecordRowSkipped(reason)
			if b.log != nil {
				b.log.Debug(ctx, "row skipped",
					logger.Int("row", n+2),
					logger.String("reason", reason),
				)
			}
			continue
		}
		metrics.RecordRowAccepted()
		records = append(records, rec)
	}
	return records
}

// buildRow converts one tokenized data row. A non-empty reason means the
// row was structurally unusable and must be excluded.
func (b *Builder) buildRow(ctx context.Context, line string) (model.MarketRecord, string) {
	tokens := csvline.Fields(strings.TrimRight(line, "\r"))
	if len(tokens) < minRowTokens {
		return model.MarketRecord{}, skipTooFewColumns
	}

	name := strings.TrimSpace(tokens[colName])
	if name == "" {
		return model.MarketRecord{}, skipMissingName
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(tokens[colLatitude]), 64)
	if err != nil {
		return model.MarketRecord{}, skipBadLatitude
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(tokens[colLongitude]), 64)
	if err != nil {
		return model.MarketRecord{}, skipBadLongitude
	}

	addr := field(tokens, colAddress)
	rawDates := field(tokens, colDateText)

	rec := model.MarketRecord{
		ID:          model.RecordID(name, lat, lon),
		Name:        name,
		Latitude:    lat,
		Longitude:   lon,
		Region:      fieldOr(tokens, colRegion, defaultRegion),
		City:        address.City(addr),
		ZipCode:     field(tokens, colZip),
		Address:     addr,
		RawDateText: rawDates,
		Cost:        fieldOr(tokens, colCost, defaultCost),
		Website:     field(tokens, colWebsite),
		Description: field(tokens, colDescription),
		Dates:       b.dates.Parse(ctx, rawDates),
	}
	return rec, ""
}

// field returns the trimmed token at idx, or "" when the row is short.
func field(tokens []string, idx int) string {
	if idx >= len(tokens) {
		return ""
	}
	return strings.TrimSpace(tokens[idx])
}

// fieldOr is field with a default for blank cells.
func fieldOr(tokens []string, idx int, def string) string {
	if v := field(tokens, idx); v != "" {
		return v
	}
	return def
}
