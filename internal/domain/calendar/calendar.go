// Package calendar builds the two-month day-cell grid shown in the
// market detail panel.
package calendar

import (
	"time"

	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
)

// Cell is one day slot in a month grid.
type Cell struct {
	// Date is the calendar day the cell represents, including the
	// leading and trailing fill days from adjacent months.
	Date model.Date `json:"date"`

	// InMonth is false for the fill days padding the first and last week.
	InMonth bool `json:"in_month"`

	// IsMarketDate marks days the market is scheduled to be open.
	IsMarketDate bool `json:"is_market_date"`

	// IsToday marks the reference day.
	IsToday bool `json:"is_today"`
}

// MonthGrid is one month rendered as whole weeks of cells.
type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Cells []Cell     `json:"cells"`
}

// SeasonMonths returns the two fixed months the detail panel renders.
// The season runs November through December.
func SeasonMonths() []time.Month {
	return []time.Month{time.November, time.December}
}

// Grid renders one MonthGrid per requested month. Market dates and the
// reference day are matched by calendar day; an open-schedule market
// (no dates) simply produces a grid with no marked days.
func Grid(dates []model.Date, today model.Date, year int, months []time.Month) []MonthGrid {
	grids := make([]MonthGrid, 0, len(months))
	for _, month := range months {
		grids = append(grids, monthGrid(dates, today, year, month))
	}
	return grids
}

func monthGrid(dates []model.Date, today model.Date, year int, month time.Month) MonthGrid {
	first := model.NewDate(year, month, 1)

	// Walk back to the Sunday opening the first week.
	cursor := first.Time().AddDate(0, 0, -int(first.Weekday()))

	grid := MonthGrid{
		Year:  year,
		Month: month,
		Name:  month.String(),
	}

	// Emit whole weeks until the month is fully covered.
	for {
		day := model.DateOf(cursor)
		grid.Cells = append(grid.Cells, Cell{
			Date:         day,
			InMonth:      day.Month == month && day.Year == year,
			IsMarketDate: containsDate(dates, day),
			IsToday:      day.Equal(today),
		})
		cursor = cursor.AddDate(0, 0, 1)

		next := model.DateOf(cursor)
		pastMonth := next.Year > year || (next.Year == year && next.Month > month)
		if pastMonth && next.Weekday() == time.Sunday {
			break
		}
	}
	return grid
}

func containsDate(dates []model.Date, day model.Date) bool {
	for _, d := range dates {
		if d.Equal(day) {
			return true
		}
	}
	return false
}
