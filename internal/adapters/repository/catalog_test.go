package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/ericjlubbers/colorado-holiday-markets-2025/internal/adapters/repository"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedClock pins the reference date to Saturday, Dec 13, 2025.
func fixedClock() time.Time {
	return time.Date(2025, time.December, 13, 10, 0, 0, 0, time.UTC)
}

func record(name, city string, dates ...model.Date) model.MarketRecord {
	return model.MarketRecord{
		ID:    model.RecordID(name, 39.7, -105.0),
		Name:  name,
		City:  city,
		Dates: dates,
	}
}

func names(records []model.MarketRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestCatalogLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty catalog", t, func() {
		c := repository.New(repository.WithClock(fixedClock))

		Convey("Then it starts unloaded with an empty view", func() {
			So(c.Loaded(ctx), ShouldBeFalse)
			So(c.View(ctx), ShouldBeEmpty)
			So(c.Size(ctx), ShouldEqual, 0)
		})

		Convey("When records are loaded", func() {
			err := c.Load(ctx, []model.MarketRecord{
				record("B Market", "Denver"),
				record("A Market", "Boulder"),
			})

			Convey("Then the view is computed immediately", func() {
				So(err, ShouldBeNil)
				So(c.Loaded(ctx), ShouldBeTrue)
				So(names(c.View(ctx)), ShouldResemble, []string{"A Market", "B Market"})
			})

			Convey("And a second load is rejected", func() {
				err := c.Load(ctx, nil)
				So(errors.Is(err, repository.ErrAlreadyLoaded), ShouldBeTrue)
				So(c.Size(ctx), ShouldEqual, 2)
			})
		})
	})
}

func TestCatalogFilters(t *testing.T) {
	ctx := context.Background()
	dec13 := model.NewDate(2025, time.December, 13)
	dec14 := model.NewDate(2025, time.December, 14)
	dec20 := model.NewDate(2025, time.December, 20)

	newCatalog := func(records ...model.MarketRecord) *repository.Catalog {
		c := repository.New(repository.WithClock(fixedClock))
		So(c.Load(ctx, records), ShouldBeNil)
		return c
	}

	Convey("Given a catalog with reference date Sat Dec 13 2025", t, func() {
		Convey("When filtering by search text", func() {
			c := newCatalog(
				model.MarketRecord{ID: "1", Name: "Mile High Market", Address: "Denver, CO", Description: "festive"},
				model.MarketRecord{ID: "2", Name: "Bazaar", Address: "Boulder, CO", Description: "big HOLIDAY fair"},
				model.MarketRecord{ID: "3", Name: "Quiet Fair", Address: "Golden, CO", Description: "small"},
			)

			Convey("Then matching is case-insensitive over name, address and description", func() {
				c.SetSearch(ctx, "mile high")
				So(names(c.View(ctx)), ShouldResemble, []string{"Mile High Market"})

				c.SetSearch(ctx, "BOULDER")
				So(names(c.View(ctx)), ShouldResemble, []string{"Bazaar"})

				c.SetSearch(ctx, "holiday")
				So(names(c.View(ctx)), ShouldResemble, []string{"Bazaar"})
			})

			Convey("And clearing the search restores everything", func() {
				c.SetSearch(ctx, "mile high")
				c.SetSearch(ctx, "")
				So(c.View(ctx), ShouldHaveLength, 3)
			})
		})

		Convey("When filtering by city and date together", func() {
			// A is in Denver and open today; B is in Boulder with an
			// unknown schedule that would pass any date filter.
			c := newCatalog(
				record("A", "Denver", dec13),
				record("B", "Boulder"),
			)
			c.SetCityFilter(ctx, "Denver")
			So(c.SetDateFilter(ctx, repository.DateFilterToday), ShouldBeNil)

			Convey("Then filters are conjunctive: city still excludes B", func() {
				So(names(c.View(ctx)), ShouldResemble, []string{"A"})
			})
		})

		Convey("When a record has no parsed dates", func() {
			c := newCatalog(record("Open Schedule", "Denver"))

			Convey("Then it passes every date filter", func() {
				for _, kind := range []repository.DateFilter{
					repository.DateFilterToday,
					repository.DateFilterTomorrow,
					repository.DateFilterWeekend,
					repository.DateFilterNone,
				} {
					So(c.SetDateFilter(ctx, kind), ShouldBeNil)
					So(c.View(ctx), ShouldHaveLength, 1)
				}
			})
		})

		Convey("When filtering by today and tomorrow", func() {
			c := newCatalog(
				record("Today Only", "Denver", dec13),
				record("Tomorrow Only", "Denver", dec14),
				record("Next Week", "Denver", dec20),
			)

			So(c.SetDateFilter(ctx, repository.DateFilterToday), ShouldBeNil)
			So(names(c.View(ctx)), ShouldResemble, []string{"Today Only"})

			So(c.SetDateFilter(ctx, repository.DateFilterTomorrow), ShouldBeNil)
			So(names(c.View(ctx)), ShouldResemble, []string{"Tomorrow Only"})
		})

		Convey("When filtering by weekend on a Saturday", func() {
			c := newCatalog(
				record("This Weekend", "Denver", dec13, dec14),
				record("Next Weekend", "Denver", dec20),
			)
			So(c.SetDateFilter(ctx, repository.DateFilterWeekend), ShouldBeNil)

			Convey("Then the window jumps to the next Saturday, not today", func() {
				// Today is Sat Dec 13; the weekend window is Dec 20-21.
				So(names(c.View(ctx)), ShouldResemble, []string{"Next Weekend"})
			})
		})

		Convey("When the date filter kind is unknown", func() {
			c := newCatalog(record("A", "Denver"))

			So(errors.Is(c.SetDateFilter(ctx, "someday"), repository.ErrInvalidDateFilter), ShouldBeTrue)
		})
	})
}

func TestCatalogWeekendMidweek(t *testing.T) {
	ctx := context.Background()

	Convey("Given a reference date of Tuesday Dec 9 2025", t, func() {
		tuesday := func() time.Time {
			return time.Date(2025, time.December, 9, 9, 0, 0, 0, time.UTC)
		}
		c := repository.New(repository.WithClock(tuesday))
		So(c.Load(ctx, []model.MarketRecord{
			record("Saturday Market", "Denver", model.NewDate(2025, time.December, 13)),
			record("Sunday Market", "Denver", model.NewDate(2025, time.December, 14)),
			record("Weekday Market", "Denver", model.NewDate(2025, time.December, 10)),
		}), ShouldBeNil)

		Convey("When filtering by weekend", func() {
			So(c.SetDateFilter(ctx, repository.DateFilterWeekend), ShouldBeNil)

			Convey("Then both Saturday and Sunday of the coming weekend match", func() {
				So(names(c.View(ctx)), ShouldResemble, []string{"Saturday Market", "Sunday Market"})
			})
		})
	})
}

func TestCatalogSort(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded catalog", t, func() {
		c := repository.New(repository.WithClock(fixedClock))
		So(c.Load(ctx, []model.MarketRecord{
			{ID: "1", Name: "Charlie", City: "Denver", RawDateText: "Dec. 6"},
			{ID: "2", Name: "Alpha", City: "boulder", RawDateText: "Nov. 28"},
			{ID: "3", Name: "Bravo", City: "Denver", RawDateText: "Dec. 6"},
		}), ShouldBeNil)

		Convey("When sorting by name descending", func() {
			So(c.SetSort(ctx, repository.SortByName, false), ShouldBeNil)
			So(names(c.View(ctx)), ShouldResemble, []string{"Charlie", "Bravo", "Alpha"})
		})

		Convey("When sorting by city", func() {
			So(c.SetSort(ctx, repository.SortByCity, true), ShouldBeNil)

			Convey("Then comparison is case-insensitive and ties keep input order", func() {
				So(names(c.View(ctx)), ShouldResemble, []string{"Alpha", "Charlie", "Bravo"})
			})
		})

		Convey("When sorting by date text", func() {
			So(c.SetSort(ctx, repository.SortByDate, true), ShouldBeNil)

			Convey("Then equal keys preserve relative input order", func() {
				// "dec. 6" sorts before "nov. 28"; Charlie and Bravo share
				// a key and keep their load order.
				So(names(c.View(ctx)), ShouldResemble, []string{"Charlie", "Bravo", "Alpha"})
			})
		})

		Convey("When the sort key is unknown", func() {
			So(errors.Is(c.SetSort(ctx, "zipcode", true), repository.ErrInvalidSortKey), ShouldBeTrue)
		})
	})
}

func TestCatalogLookups(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded catalog", t, func() {
		a := record("A Market", "Denver")
		b := record("B Market", "Boulder")
		c := repository.New(repository.WithClock(fixedClock))
		So(c.Load(ctx, []model.MarketRecord{a, b}), ShouldBeNil)

		Convey("When looking up by id", func() {
			got, err := c.ByID(ctx, a.ID)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "A Market")
		})

		Convey("When the id is unknown", func() {
			_, err := c.ByID(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a filter hides a record", func() {
			c.SetCityFilter(ctx, "Denver")

			Convey("Then ByID still finds it", func() {
				got, err := c.ByID(ctx, b.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "B Market")
			})
		})

		Convey("When listing cities", func() {
			So(c.Cities(ctx), ShouldResemble, []string{"Boulder", "Denver"})
		})

		Convey("Then the fixed reference date is exposed", func() {
			So(c.Today(ctx), ShouldResemble, model.NewDate(2025, time.December, 13))
		})
	})
}
