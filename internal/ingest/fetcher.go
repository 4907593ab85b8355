// Package ingest loads the published market spreadsheet and turns its CSV
// rows into domain records.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/logger"
	"github.com/ericjlubbers/colorado-holiday-markets-2025/pkg/metrics"
)

// sheetIDPlaceholder is substituted into the URL template.
const sheetIDPlaceholder = "{sheetId}"

// Default fetch configuration constants.
const (
	defaultRetryCount = 3
	defaultRetryWait  = 2 * time.Second
	defaultTimeout    = 15 * time.Second
)

// Fetcher retrieves the sheet's CSV export over HTTP. The fetch happens
// exactly once per session, at startup; there is no automatic retry after
// the client-level retries are exhausted.
type Fetcher struct {
	client      *resty.Client
	urlTemplate string
	sheetID     string
	log         logger.Logger

	retryCount int
	retryWait  time.Duration
	timeout    time.Duration
}

// FetcherOption applies a configuration option to the Fetcher.
type FetcherOption func(*Fetcher)

// WithSheetID sets the spreadsheet id substituted into the URL template.
func WithSheetID(id string) FetcherOption {
	return func(f *Fetcher) {
		f.sheetID = id
	}
}

// WithURLTemplate sets the CSV export URL template.
func WithURLTemplate(tmpl string) FetcherOption {
	return func(f *Fetcher) {
		if tmpl != "" {
			f.urlTemplate = tmpl
		}
	}
}

// WithRetry tunes client-level retries for the startup fetch.
func WithRetry(count int, wait time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if count >= 0 {
			f.retryCount = count
		}
		if wait > 0 {
			f.retryWait = wait
		}
	}
}

// WithTimeout bounds a single fetch attempt.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithFetcherLogger sets the logger used for fetch diagnostics.
func WithFetcherLogger(log logger.Logger) FetcherOption {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFetcher constructs a Fetcher with default configuration.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		retryCount: defaultRetryCount,
		retryWait:  defaultRetryWait,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = resty.New().
		SetRetryCount(f.retryCount).
		SetRetryWaitTime(f.retryWait).
		SetTimeout(f.timeout)
	return f
}

// URL resolves the templated sheet URL.
func (f *Fetcher) URL() string {
	return strings.ReplaceAll(f.urlTemplate, sheetIDPlaceholder, f.sheetID)
}

// Fetch retrieves the CSV body. Non-2xx responses and HTML-shaped bodies
// (the sheet's "sharing is off" error page) are ingestion failures.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if strings.TrimSpace(f.sheetID) == "" {
		return "", ErrNoSheetID
	}

	url := f.URL()
	metrics.RecordFetchAttempt()
	if f.log != nil {
		f.log.Info(ctx, "fetching market sheet", logger.String("url", url))
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		metrics.RecordFetchFailure()
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if !resp.IsSuccess() {
		metrics.RecordFetchFailure()
		return "", fmt.Errorf("%w: %s", ErrBadStatus, resp.Status())
	}

	body := resp.String()
	if looksLikeHTML(body) {
		metrics.RecordFetchFailure()
		return "", ErrHTMLBody
	}
	return body, nil
}

// looksLikeHTML detects the HTML error page Google serves when the sheet
// is not shared publicly.
func looksLikeHTML(body string) bool {
	head := strings.ToLower(body)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<!doctype") || strings.Contains(head, "<html")
}
