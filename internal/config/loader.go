package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MARKETS_CONFIG is set
//  3. env (prefix MARKETS_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MARKETS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MARKETS_ADDR, MARKETS_SHEET_ID, ...
	// Map env keys like MARKETS_SEASON_YEAR -> season_year (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MARKETS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "markets_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.SeasonYear < 2000 || cfg.SeasonYear > 2100 {
		return nil, fmt.Errorf("%w: season_year %d out of range", ErrInvalidConfig, cfg.SeasonYear)
	}
	if !strings.Contains(cfg.SheetURLTemplate, "{sheetId}") {
		return nil, fmt.Errorf("%w: sheet_url_template missing {sheetId} placeholder", ErrInvalidConfig)
	}
	return &cfg, nil
}
