// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Date is a calendar date with no time-of-day or zone component.
// Comparisons are by year/month/day only.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its parts, normalizing overflow
// (e.g. Nov 31 becomes Dec 1) the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return DateOf(d.Time().AddDate(0, 0, 1))
}

// After reports whether d is after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarketRecord is one holiday-market listing. Records are immutable once
// built; a record exists only if it carried a non-empty name and both
// coordinates parsed. All other fields degrade to defaults.
type MarketRecord struct {
	ID          string
	Name        string
	Latitude    float64
	Longitude   float64
	Region      string
	City        string
	ZipCode     string
	Address     string
	RawDateText string
	Cost        string
	Website     string
	Description string

	// Dates is the concrete set of open days parsed from RawDateText.
	// An empty set means the schedule is unknown and the market is
	// treated as open on every queried date.
	Dates []Date
}

// OpenOn reports whether the market is open on the given date.
// Markets with no parsed dates count as always open.
func (m MarketRecord) OpenOn(d Date) bool {
	if len(m.Dates) == 0 {
		return true
	}
	for _, md := range m.Dates {
		if md.Equal(d) {
			return true
		}
	}
	return false
}

// RecordID derives a stable, deterministic identifier from the fields that
// define a market's identity. Two markets sharing a name still get distinct
// ids as long as their coordinates differ.
func RecordID(name string, lat, lon float64) string {
	key := fmt.Sprintf("%s|%.6f|%.6f", name, lat, lon)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
