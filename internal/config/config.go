// Package config holds the markdown editor configuration consumed during
// template generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vailmd/go-webexport/internal/fileutil"
	"github.com/vailmd/go-webexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// MarkdownEditorConfig describes how the markdown viewer renders notes.
// The template engine folds these values into the generated shells.
type MarkdownEditorConfig struct {
	// FontFamily is the base font stack of the rendered note.
	FontFamily string `yaml:"fontFamily"`

	// FontSize is the base font size in pixels.
	FontSize int `yaml:"fontSize"`

	// LineHeight is the unitless line height of body text.
	LineHeight float64 `yaml:"lineHeight"`

	// BackgroundColor is the page background (CSS color). Ignored when the
	// export requests a transparent background.
	BackgroundColor string `yaml:"backgroundColor"`

	// ForegroundColor is the base text color (CSS color).
	ForegroundColor string `yaml:"foregroundColor"`

	// RenderingStyle names the built-in CSS style used when an export does
	// not carry an explicit style file.
	RenderingStyle string `yaml:"renderingStyle"`

	// SyntaxHighlightStyle names the built-in highlight CSS used when an
	// export does not carry an explicit highlight file.
	SyntaxHighlightStyle string `yaml:"syntaxHighlightStyle"`
}

// Default returns the editor configuration used when no config file exists.
func Default() *MarkdownEditorConfig {
	return &MarkdownEditorConfig{
		FontFamily:           `-apple-system, "Segoe UI", Roboto, sans-serif`,
		FontSize:             16,
		LineHeight:           1.6,
		BackgroundColor:      "#ffffff",
		ForegroundColor:      "#24292f",
		RenderingStyle:       "default",
		SyntaxHighlightStyle: "highlight",
	}
}

// Load loads the editor configuration from a file path or config name.
// A string containing a path separator is treated as a file path; anything
// else is searched as a name in the current directory and the user config
// directory. Returns an error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*MarkdownEditorConfig, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-webexport/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-webexport", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
