// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and env vars on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Default sheet export template. {sheetId} is substituted at fetch time.
const defaultSheetURLTemplate = "https://docs.google.com/spreadsheets/d/{sheetId}/export?format=csv"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SheetID identifies the published spreadsheet holding market listings.
	SheetID string `koanf:"sheet_id"`

	// SheetURLTemplate is the CSV export URL with a {sheetId} placeholder.
	SheetURLTemplate string `koanf:"sheet_url_template"`

	// SeasonYear anchors all parsed market dates to one calendar year.
	SeasonYear int `koanf:"season_year"`

	// FetchRetryCount and FetchRetryWaitMS tune the startup sheet fetch.
	FetchRetryCount  int `koanf:"fetch_retry_count"`
	FetchRetryWaitMS int `koanf:"fetch_retry_wait_ms"`

	// FetchTimeoutMS bounds a single fetch attempt.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		SheetURLTemplate: defaultSheetURLTemplate,
		SeasonYear:       2025,
		FetchRetryCount:  3,
		FetchRetryWaitMS: 2000,
		FetchTimeoutMS:   15000,
	}
}
