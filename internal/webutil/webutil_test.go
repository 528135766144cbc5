package webutil

import (
	"encoding/base64"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileURL(t *testing.T, path string) *url.URL {
	t.Helper()
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
}

func TestToDataURI_File(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("payload bytes")
	src := filepath.Join(dir, "pic.png")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ToDataURI(fileURL(t, src))
	if err != nil {
		t.Fatalf("ToDataURI: %v", err)
	}

	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToDataURI_SniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "blob.unknownext")
	// PNG magic bytes trigger image/png via content sniffing.
	payload := []byte("\x89PNG\r\n\x1a\n00000000")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ToDataURI(fileURL(t, src))
	if err != nil {
		t.Fatalf("ToDataURI: %v", err)
	}

	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("expected sniffed image/png prefix, got %q", got)
	}
}

func TestToDataURI_StripsCharset(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "note.css")
	if err := os.WriteFile(src, []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ToDataURI(fileURL(t, src))
	if err != nil {
		t.Fatalf("ToDataURI: %v", err)
	}

	if strings.Contains(got, "charset") {
		t.Errorf("charset parameter must be stripped, got %q", got)
	}
	if !strings.HasPrefix(got, "data:text/css;base64,") {
		t.Errorf("expected bare text/css type, got %q", got)
	}
}

func TestToDataURI_Qrc(t *testing.T) {
	got, err := ToDataURI(&url.URL{Scheme: "qrc", Path: "/styles/default.css"})
	if err != nil {
		t.Fatalf("ToDataURI: %v", err)
	}

	if !strings.HasPrefix(got, "data:text/css;base64,") {
		t.Errorf("expected css data URI for embedded style, got %.60q", got)
	}
}

func TestToDataURI_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ToDataURI(fileURL(t, filepath.Join(t.TempDir(), "missing.png")))
		if !errors.Is(err, ErrResourceRead) {
			t.Errorf("expected ErrResourceRead, got %v", err)
		}
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := ToDataURI(&url.URL{Scheme: "http", Host: "example.com", Path: "/x.png"})
		if !errors.Is(err, ErrUnsupportedScheme) {
			t.Errorf("expected ErrUnsupportedScheme, got %v", err)
		}
	})

	t.Run("unknown qrc resource", func(t *testing.T) {
		_, err := ToDataURI(&url.URL{Scheme: "qrc", Path: "/nope/x.png"})
		if !errors.Is(err, ErrResourceRead) {
			t.Errorf("expected ErrResourceRead, got %v", err)
		}
	})
}

func TestCopyResource_File(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "x.png")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	folder := filepath.Join(t.TempDir(), "note_files")

	dst, err := CopyResource(fileURL(t, src), folder)
	if err != nil {
		t.Fatalf("CopyResource: %v", err)
	}

	if !filepath.IsAbs(dst) {
		t.Errorf("destination must be absolute, got %q", dst)
	}
	if filepath.Base(dst) != "x.png" {
		t.Errorf("copy must keep the base name, got %q", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("copy content = %q", data)
	}
}

func TestCopyResource_Qrc(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "note_files")

	dst, err := CopyResource(&url.URL{Scheme: "qrc", Path: "/styles/default.css"}, folder)
	if err != nil {
		t.Fatalf("CopyResource: %v", err)
	}

	if filepath.Base(dst) != "default.css" {
		t.Errorf("copy must keep the base name, got %q", dst)
	}
	if info, err := os.Stat(dst); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty copy, err=%v", err)
	}
}

func TestCopyResource_Errors(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "note_files")

	t.Run("missing source", func(t *testing.T) {
		_, err := CopyResource(fileURL(t, filepath.Join(t.TempDir(), "missing.png")), folder)
		if !errors.Is(err, ErrResourceCopy) {
			t.Errorf("expected ErrResourceCopy, got %v", err)
		}
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := CopyResource(&url.URL{Scheme: "http", Host: "example.com", Path: "/x.png"}, folder)
		if !errors.Is(err, ErrUnsupportedScheme) {
			t.Errorf("expected ErrUnsupportedScheme, got %v", err)
		}
	})

	t.Run("no file name", func(t *testing.T) {
		_, err := CopyResource(&url.URL{Scheme: "file", Path: "/"}, folder)
		if !errors.Is(err, ErrResourceCopy) {
			t.Errorf("expected ErrResourceCopy, got %v", err)
		}
	})
}

func TestPathToFileURL(t *testing.T) {
	u := PathToFileURL("/notes/sub/a.md")

	if u.Scheme != "file" {
		t.Errorf("scheme = %q", u.Scheme)
	}
	if u.Path != "/notes/sub/a.md" {
		t.Errorf("path = %q", u.Path)
	}
}

func TestFileURLPath(t *testing.T) {
	tests := []struct {
		name string
		u    *url.URL
		want string
	}{
		{"plain path", &url.URL{Scheme: "file", Path: "/notes/a.md"}, filepath.FromSlash("/notes/a.md")},
		{"windows drive letter", &url.URL{Scheme: "file", Path: "/C:/notes/a.md"}, filepath.FromSlash("C:/notes/a.md")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileURLPath(tt.u); got != tt.want {
				t.Errorf("FileURLPath(%v) = %q, want %q", tt.u, got, tt.want)
			}
		})
	}
}
