// Package assets provides the built-in template shells, CSS styles, and
// application resources compiled into the binary.
//
// Templates are HTML document skeletons with named placeholders filled in by
// the template engine. Styles are CSS files referenced by name (without the
// .css extension). Resources back qrc: URLs in rendered content.
package assets

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// LoadStyle loads a built-in CSS style by name (without .css extension).
func LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// LoadTemplate loads a built-in HTML template shell by name (without .html
// extension).
func LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// ReadResource reads an application resource by its qrc-style path, e.g.
// "styles/default.css". Leading slashes are ignored.
func ReadResource(resourcePath string) ([]byte, error) {
	clean := path.Clean(strings.TrimPrefix(resourcePath, "/"))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, resourcePath)
	}

	var fsys *embed.FS
	switch {
	case strings.HasPrefix(clean, "styles/"):
		fsys = &styles
	case strings.HasPrefix(clean, "templates/"):
		fsys = &templates
	default:
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, resourcePath)
	}

	data, err := fsys.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, resourcePath)
	}
	return data, nil
}
