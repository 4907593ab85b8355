package ingest

import "errors"

// Sentinel kinds for ingestion errors. A fetch that fails with any of
// these is fatal for the session: the catalog stays empty.
var (
	ErrNoSheetID = errors.New("sheet id not configured")
	ErrBadStatus = errors.New("sheet fetch returned non-success status")
	ErrHTMLBody  = errors.New("sheet response is HTML; check public sharing settings")
	ErrFetch     = errors.New("sheet fetch failed")
)
