package webexport

import "errors"

// Sentinel errors for library operations.
var (
	ErrNotMarkdown       = errors.New("document is not markdown")
	ErrExportOngoing     = errors.New("another export is ongoing")
	ErrNotPrepared       = errors.New("exporter is not prepared")
	ErrAlreadyPrepared   = errors.New("exporter is already prepared")
	ErrRenderFailed      = errors.New("renderer failed")
	ErrEmptyContent      = errors.New("extracted content is empty")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrWriteOutput       = errors.New("failed to write output file")

	// Browser errors surfaced by the rod-backed viewer.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
