package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ericjlubbers/colorado-holiday-markets-2025/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		os.Unsetenv("MARKETS_CONFIG")
		os.Unsetenv("MARKETS_ADDR")
		os.Unsetenv("MARKETS_SEASON_YEAR")
		os.Unsetenv("MARKETS_SHEET_ID")

		Convey("When loading with no file and no env", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.SeasonYear, ShouldEqual, 2025)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.SheetURLTemplate, ShouldContainSubstring, "{sheetId}")
			})
		})

		Convey("When env vars override defaults", func() {
			os.Setenv("MARKETS_ADDR", ":9999")
			os.Setenv("MARKETS_SEASON_YEAR", "2026")
			os.Setenv("MARKETS_SHEET_ID", "abc123")
			defer func() {
				os.Unsetenv("MARKETS_ADDR")
				os.Unsetenv("MARKETS_SEASON_YEAR")
				os.Unsetenv("MARKETS_SHEET_ID")
			}()

			cfg, err := config.Load(context.Background())

			Convey("Then the env values should win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.SeasonYear, ShouldEqual, 2026)
				So(cfg.SheetID, ShouldEqual, "abc123")
			})
		})

		Convey("When a YAML file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "addr: \":7070\"\nseason_year: 2024\nlog_level: debug\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			os.Setenv("MARKETS_CONFIG", path)
			defer os.Unsetenv("MARKETS_CONFIG")

			cfg, err := config.Load(context.Background())

			Convey("Then the file values should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.SeasonYear, ShouldEqual, 2024)
				So(cfg.LogLevel, ShouldEqual, "debug")
			})

			Convey("And env should still override the file", func() {
				os.Setenv("MARKETS_ADDR", ":6060")
				defer os.Unsetenv("MARKETS_ADDR")

				cfg, err := config.Load(context.Background())
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
			})
		})

		Convey("When validation fails", func() {
			Convey("And season_year is out of range", func() {
				os.Setenv("MARKETS_SEASON_YEAR", "1800")
				defer os.Unsetenv("MARKETS_SEASON_YEAR")

				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "season_year")
			})

			Convey("And the sheet URL template has no placeholder", func() {
				os.Setenv("MARKETS_SHEET_URL_TEMPLATE", "https://example.com/static.csv")
				defer os.Unsetenv("MARKETS_SHEET_URL_TEMPLATE")

				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "sheetId")
			})
		})
	})
}
