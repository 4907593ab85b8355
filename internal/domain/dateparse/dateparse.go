// Package dateparse turns hand-written market schedule strings into
// concrete calendar dates.
//
// The sheet's date column is free text following a loose house grammar:
// comma-separated fragments, each either a pipe range ("Nov 29|Nov 30"),
// a dash range ("Nov. 28-Dec. 1", "Dec. 13-14"), or a single date
// ("Dec. 6"). Month names are case-insensitive English three-letter
// prefixes and every date is anchored to one fixed season year.
package dateparse

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/logger"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/metrics"
)

// defaultSeasonYear anchors dates when no year option is given.
const defaultSeasonYear = 2025

// monthDayPattern matches "<month word> <day>", with an optional period
// after the month ("Nov. 28", "nov 28", "November 28").
var monthDayPattern = regexp.MustCompile(`^([A-Za-z]{3,})\.?\s+(\d{1,2})$`)

// dayOnlyPattern matches a bare day number used on the right side of a
// same-month dash range ("Dec. 13-14").
var dayOnlyPattern = regexp.MustCompile(`^(\d{1,2})$`)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Parser parses schedule text into season-anchored dates.
type Parser struct {
	year int
	log  logger.Logger
}

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithYear sets the season year all parsed dates are anchored to.
func WithYear(year int) Option {
	return func(p *Parser) {
		if year > 0 {
			p.year = year
		}
	}
}

// WithLogger sets the logger used for fragment diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// New constructs a Parser with default configuration.
func New(opts ...Option) *Parser {
	p := &Parser{year: defaultSeasonYear}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Year returns the season year the parser anchors dates to.
func (p *Parser) Year() int {
	return p.year
}

// Parse splits text on commas into fragments and parses each one
// independently, concatenating results in fragment order. Malformed
// fragments contribute zero dates and are never an error; duplicates
// across fragments are not removed.
func (p *Parser) Parse(ctx context.Context, text string) []model.Date {
	var dates []model.Date
	if strings.TrimSpace(text) == "" {
		return dates
	}

	for _, fragment := range strings.Split(text, ",") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		parsed, ok := p.parseFragment(fragment)
		if !ok {
			metrics.RecordFragmentRejected()
			if p.log != nil {
				p.log.Debug(ctx, "unparseable date fragment skipped",
					logger.String("fragment", fragment),
				)
			}
			continue
		}
		metrics.RecordFragmentParsed()
		dates = append(dates, parsed...)
	}
	return dates
}

// parseFragment tries the pipe, dash, and single-date grammars in order.
func (p *Parser) parseFragment(fragment string) ([]model.Date, bool) {
	if strings.Contains(fragment, "|") {
		return p.parsePipeRange(fragment)
	}
	if strings.Contains(fragment, "-") {
		return p.parseDashRange(fragment)
	}
	start, ok := p.parseMonthDay(fragment)
	if !ok {
		return nil, false
	}
	return []model.Date{start}, true
}

// parsePipeRange handles "<Mon> <Day>|<Mon> <Day>".
func (p *Parser) parsePipeRange(fragment string) ([]model.Date, bool) {
	sides := strings.SplitN(fragment, "|", 2)
	start, ok := p.parseMonthDay(strings.TrimSpace(sides[0]))
	if !ok {
		return nil, false
	}
	end, ok := p.parseMonthDay(strings.TrimSpace(sides[1]))
	if !ok {
		return nil, false
	}
	return expandRange(start, end), true
}

// parseDashRange handles "<Mon>. <Day>-<Mon>. <Day>" and "<Mon>. <Day>-<Day>".
// The last dash is the separator so a month segment containing no dash is
// safe. A bare-number right side inherits the left side's month.
func (p *Parser) parseDashRange(fragment string) ([]model.Date, bool) {
	sep := strings.LastIndex(fragment, "-")
	left := strings.TrimSpace(fragment[:sep])
	right := strings.TrimSpace(fragment[sep+1:])

	start, ok := p.parseMonthDay(left)
	if !ok {
		return nil, false
	}

	end, ok := p.parseMonthDay(right)
	if !ok {
		m := dayOnlyPattern.FindStringSubmatch(right)
		if m == nil {
			return nil, false
		}
		day, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false
		}
		end = model.NewDate(p.year, start.Month, day)
	}
	return expandRange(start, end), true
}

// parseMonthDay resolves "<month word> <day>" against the season year.
func (p *Parser) parseMonthDay(s string) (model.Date, bool) {
	m := monthDayPattern.FindStringSubmatch(s)
	if m == nil {
		return model.Date{}, false
	}
	prefix := strings.ToLower(m[1])
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	month, known := monthsByPrefix[prefix]
	if !known {
		return model.Date{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return model.Date{}, false
	}
	return model.NewDate(p.year, month, day), true
}

// expandRange walks forward one calendar day at a time from start to end
// inclusive, which naturally crosses month boundaries. A reversed range
// yields zero dates; that degenerate input stays a silent no-op rather
// than being swapped into a forward range.
func expandRange(start, end model.Date) []model.Date {
	var dates []model.Date
	for d := start; !d.After(end); d = d.Next() {
		dates = append(dates, d)
	}
	return dates
}
