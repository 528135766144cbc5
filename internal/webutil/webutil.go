// Package webutil converts and copies resources referenced by rendered web
// content: data URI encoding of local and application resources, and
// resource file copying for folder-based exports.
package webutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"

	"github.com/vailmd/go-webexport/internal/assets"
)

// Sentinel errors for resource operations.
var (
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	ErrResourceRead      = errors.New("failed to read resource")
	ErrResourceCopy      = errors.New("failed to copy resource")
)

// maxInlineSize caps resources converted to data URIs (16MB decoded).
const maxInlineSize = 16 << 20

// ToDataURI reads the resource behind a file: or qrc: URL and returns it as
// a base64 data URI. The MIME type is derived from the file extension, with
// content sniffing as fallback.
func ToDataURI(target *url.URL) (string, error) {
	data, err := readResource(target)
	if err != nil {
		return "", err
	}
	if len(data) > maxInlineSize {
		return "", fmt.Errorf("%w: resource too large (%d bytes)", ErrResourceRead, len(data))
	}

	mimeType := mime.TypeByExtension(path.Ext(target.Path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	// Strip charset parameters, data URIs carry the bare type.
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// CopyResource copies the resource behind a file: or qrc: URL into folder,
// creating the folder as needed, and returns the absolute path of the copy.
// The copy keeps the resource's base name, so the returned path always ends
// with "<folder>/<filename>".
func CopyResource(target *url.URL, folder string) (string, error) {
	name := path.Base(target.Path)
	if name == "." || name == "/" {
		return "", fmt.Errorf("%w: no file name in %s", ErrResourceCopy, target)
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResourceCopy, err)
	}

	dst, err := filepath.Abs(filepath.Join(folder, name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrResourceCopy, err)
	}

	switch target.Scheme {
	case "file":
		if err := cp.Copy(FileURLPath(target), dst); err != nil {
			return "", fmt.Errorf("%w: %v", ErrResourceCopy, err)
		}
	case "qrc":
		data, err := assets.ReadResource(target.Path)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrResourceCopy, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil { // #nosec G306 -- exported resources are world-readable by design
			return "", fmt.Errorf("%w: %v", ErrResourceCopy, err)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, target.Scheme)
	}

	return dst, nil
}

// PathToFileURL converts an absolute path to a file:// URL, handling
// Windows backslashes.
func PathToFileURL(absPath string) *url.URL {
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
}

// readResource loads the bytes behind a file: or qrc: URL.
func readResource(target *url.URL) ([]byte, error) {
	switch target.Scheme {
	case "file":
		data, err := os.ReadFile(FileURLPath(target)) // #nosec G304 -- resource paths come from rendered note content
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResourceRead, err)
		}
		return data, nil
	case "qrc":
		data, err := assets.ReadResource(target.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResourceRead, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, target.Scheme)
	}
}

// FileURLPath converts a file: URL to a native filesystem path.
func FileURLPath(target *url.URL) string {
	p := target.Path
	// Windows file URLs carry a leading slash before the drive letter.
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}
