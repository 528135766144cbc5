package webexport

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExportOptionValidate(t *testing.T) {
	tests := []struct {
		name    string
		opt     ExportOption
		wantErr error
	}{
		{
			name: "html export",
			opt:  ExportOption{TargetFormat: FormatHTML, HTML: &HTMLOption{}},
		},
		{
			name:    "unknown format",
			opt:     ExportOption{TargetFormat: "pdf", HTML: &HTMLOption{}},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "missing html option",
			opt:     ExportOption{TargetFormat: FormatHTML},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "mime-html requested",
			opt:     ExportOption{TargetFormat: FormatHTML, HTML: &HTMLOption{UseMimeHTMLFormat: true}},
			wantErr: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opt.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentIsMarkdown(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/notes/a.md", true},
		{"/notes/a.markdown", true},
		{"/notes/a.mkd", true},
		{"/notes/A.MD", true},
		{"/notes/a.txt", false},
		{"/notes/a.html", false},
		{"/notes/md", false},
		{"", false},
	}

	for _, tt := range tests {
		d := Document{Path: tt.path}
		if got := d.IsMarkdown(); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDocumentBaseURL(t *testing.T) {
	d := Document{Path: "/notes/sub/note.md"}

	u := d.BaseURL()

	if u.Scheme != "file" {
		t.Errorf("scheme = %q, want file", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/notes/sub/note.md") {
		t.Errorf("path = %q, want suffix /notes/sub/note.md", u.Path)
	}
}

func TestWithPollIntervalPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive poll interval")
		}
	}()
	WithPollInterval(0)
}

func TestWithSettleDelayPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative settle delay")
		}
	}()
	WithSettleDelay(-time.Millisecond)
}

func TestWithSettleDelayAcceptsZero(t *testing.T) {
	e := New(WithSettleDelay(0))
	if e.cfg.settleDelay != 0 {
		t.Errorf("settleDelay = %v, want 0", e.cfg.settleDelay)
	}
}

func TestNewDefaults(t *testing.T) {
	e := New()

	if e.cfg.pollInterval != defaultPollInterval {
		t.Errorf("pollInterval = %v, want %v", e.cfg.pollInterval, defaultPollInterval)
	}
	if e.cfg.settleDelay != defaultSettleDelay {
		t.Errorf("settleDelay = %v, want %v", e.cfg.settleDelay, defaultSettleDelay)
	}
	if e.cfg.logf == nil {
		t.Error("logf must default to a no-op, not nil")
	}
	if e.newViewer == nil {
		t.Error("viewer factory must be set")
	}
}

func TestWithLogfNilKeepsDefault(t *testing.T) {
	e := New(WithLogf(nil))
	if e.cfg.logf == nil {
		t.Error("nil logf must not unset the default")
	}
}
