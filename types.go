package webexport

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// appName is appended to exported document titles.
const appName = "VailMD"

// Export format constants.
const (
	FormatHTML = "html"
)

// markdownExtensions are the recognized markdown file extensions.
var markdownExtensions = []string{".md", ".markdown", ".mkd"}

// HTMLOption configures the HTML export target.
type HTMLOption struct {
	// EmbedStyles inlines style resources (url("file:..."), url("qrc:..."))
	// as data URIs inside the exported style block.
	EmbedStyles bool

	// CompletePage exports referenced body resources along with the page,
	// either inlined (EmbedImages) or copied into a sibling folder.
	CompletePage bool

	// EmbedImages inlines image sources as data URIs. Only effective when
	// CompletePage is set.
	EmbedImages bool

	// AddOutlinePanel adds a heading outline sidebar to the exported page.
	AddOutlinePanel bool

	// UseMimeHTMLFormat requests a single MIME-HTML file. Not supported.
	UseMimeHTMLFormat bool
}

// ExportOption configures one export. Immutable for the duration of an export.
type ExportOption struct {
	TargetFormat string      // currently only FormatHTML
	HTML         *HTMLOption // required when TargetFormat is FormatHTML

	// RenderingStyleFile is the CSS style used to render the note: a file
	// path, or the bare name of a built-in style. Empty means the
	// configured default.
	RenderingStyleFile string

	// SyntaxHighlightStyleFile is the CSS used for code block highlighting:
	// a file path or built-in name. Empty means the configured default.
	SyntaxHighlightStyleFile string

	// TransparentBackground renders the preview without a background color.
	TransparentBackground bool
}

// Validate checks that the option describes a supported export.
func (o *ExportOption) Validate() error {
	if o.TargetFormat != FormatHTML {
		return ErrUnsupportedFormat
	}
	if o.HTML == nil || o.HTML.UseMimeHTMLFormat {
		return ErrUnsupportedFormat
	}
	return nil
}

// Document is a markdown source file to export.
type Document struct {
	// Path is the content path of the note. It is the resolution base for
	// relative resource URLs in the rendered content.
	Path string

	// Content is the raw markdown text.
	Content string
}

// IsMarkdown reports whether the document's content type is markdown,
// judged by its file extension.
func (d Document) IsMarkdown() bool {
	ext := strings.ToLower(filepath.Ext(d.Path))
	for _, e := range markdownExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// BaseURL returns the file:// URL of the document path, used as the base
// for resolving relative resource references.
func (d Document) BaseURL() *url.URL {
	abs, err := filepath.Abs(d.Path)
	if err != nil {
		abs = d.Path
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
}

// Fragments holds the head, style and body HTML extracted from the
// live-rendered document, prior to final template assembly.
type Fragments struct {
	Head  string
	Style string
	Body  string
}

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	pollInterval time.Duration
	settleDelay  time.Duration
	configFile   string
	logf         func(format string, args ...any)
}

// Default wait cadence of the readiness and content polling loops.
const (
	defaultPollInterval = 100 * time.Millisecond
	defaultSettleDelay  = 200 * time.Millisecond
)

// WithPollInterval sets the readiness polling interval.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPollInterval(d time.Duration) Option {
	if d <= 0 {
		panic("webexport: WithPollInterval duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.pollInterval = d
	}
}

// WithSettleDelay sets the extra wait applied after the renderer reports
// readiness, absorbing post-signal finalization.
// Panics if d < 0.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("webexport: WithSettleDelay duration must not be negative")
	}
	return func(e *Exporter) {
		e.cfg.settleDelay = d
	}
}

// WithEditorConfigFile sets the editor configuration file (name or path)
// loaded during Prepare. The default uses built-in editor settings.
func WithEditorConfigFile(nameOrPath string) Option {
	return func(e *Exporter) {
		e.cfg.configFile = nameOrPath
	}
}

// WithLogf sets the diagnostic log function. The default discards logs.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(e *Exporter) {
		if logf != nil {
			e.cfg.logf = logf
		}
	}
}
