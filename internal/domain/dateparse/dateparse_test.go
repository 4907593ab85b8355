package dateparse_test

import (
	"context"
	"testing"
	"time"

	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/dateparse"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func d(month time.Month, day int) model.Date {
	return model.NewDate(2025, month, day)
}

func TestParse(t *testing.T) {
	ctx := context.Background()

	Convey("Given a parser anchored to the 2025 season", t, func() {
		p := dateparse.New(dateparse.WithYear(2025))

		Convey("When parsing a dash range across months", func() {
			got := p.Parse(ctx, "Nov. 28-Dec. 1")

			Convey("Then it walks forward through the month boundary", func() {
				So(got, ShouldResemble, []model.Date{
					d(time.November, 28),
					d(time.November, 29),
					d(time.November, 30),
					d(time.December, 1),
				})
			})
		})

		Convey("When parsing a same-month dash range with a bare end day", func() {
			got := p.Parse(ctx, "Dec. 13-14")

			So(got, ShouldResemble, []model.Date{d(time.December, 13), d(time.December, 14)})
		})

		Convey("When parsing a reversed same-month range", func() {
			got := p.Parse(ctx, "Dec. 14-13")

			Convey("Then it yields zero dates rather than swapping", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When parsing the pipe format", func() {
			got := p.Parse(ctx, "Nov 29|Nov 30")

			So(got, ShouldResemble, []model.Date{d(time.November, 29), d(time.November, 30)})
		})

		Convey("When parsing a single date", func() {
			So(p.Parse(ctx, "Dec. 6"), ShouldResemble, []model.Date{d(time.December, 6)})
		})

		Convey("When month names vary in case and length", func() {
			So(p.Parse(ctx, "november 28"), ShouldResemble, []model.Date{d(time.November, 28)})
			So(p.Parse(ctx, "DEC 6"), ShouldResemble, []model.Date{d(time.December, 6)})
		})

		Convey("When parsing multiple comma-separated fragments", func() {
			got := p.Parse(ctx, "Nov. 28-Nov. 29, Dec. 6, Dec. 13-14")

			Convey("Then fragment order is preserved and results concatenate", func() {
				So(got, ShouldResemble, []model.Date{
					d(time.November, 28),
					d(time.November, 29),
					d(time.December, 6),
					d(time.December, 13),
					d(time.December, 14),
				})
			})
		})

		Convey("When fragments overlap", func() {
			got := p.Parse(ctx, "Dec. 6, Dec. 6")

			Convey("Then duplicates are not removed", func() {
				So(got, ShouldResemble, []model.Date{d(time.December, 6), d(time.December, 6)})
			})
		})

		Convey("When a fragment is malformed", func() {
			got := p.Parse(ctx, "every weekend, Dec. 6")

			Convey("Then only the bad fragment is dropped", func() {
				So(got, ShouldResemble, []model.Date{d(time.December, 6)})
			})
		})

		Convey("When one pipe side fails to parse", func() {
			So(p.Parse(ctx, "Nov 29|whenever"), ShouldBeEmpty)
		})

		Convey("When one dash side fails to parse", func() {
			So(p.Parse(ctx, "sometime-Dec. 1"), ShouldBeEmpty)
		})

		Convey("When the month word is not a real month", func() {
			So(p.Parse(ctx, "Xyz. 3"), ShouldBeEmpty)
		})

		Convey("When text is empty or blank", func() {
			So(p.Parse(ctx, ""), ShouldBeEmpty)
			So(p.Parse(ctx, "   "), ShouldBeEmpty)
		})
	})

	Convey("Given a parser with a different season year", t, func() {
		p := dateparse.New(dateparse.WithYear(2024))

		Convey("Then dates anchor to that year", func() {
			So(p.Parse(ctx, "Dec. 6"), ShouldResemble, []model.Date{model.NewDate(2024, time.December, 6)})
			So(p.Year(), ShouldEqual, 2024)
		})
	})
}
