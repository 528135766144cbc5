package webexport

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/vailmd/go-webexport/internal/assets"
	"github.com/vailmd/go-webexport/internal/config"
	"github.com/vailmd/go-webexport/internal/fileutil"
)

// Template shell names in the embedded assets.
const (
	previewTemplateName = "preview"
	exportTemplateName  = "export"
)

// Named placeholders of the template shells. Filled by the Fill* functions
// below (fill-by-name contract).
const (
	placeholderTitle     = "<!-- placeholder:title -->"
	placeholderHead      = "<!-- placeholder:head -->"
	placeholderStyles    = "/* placeholder:styles */"
	placeholderAppStyles = "/* placeholder:app-styles */"
	placeholderBody      = "<!-- placeholder:body -->"
	placeholderOutline   = "<!-- placeholder:outline -->"
)

// fillTitle substitutes the title placeholder. The title is escaped.
func fillTitle(shell, title string) string {
	return strings.Replace(shell, placeholderTitle, html.EscapeString(title), 1)
}

// fillHeadContent substitutes the head placeholder with raw head HTML.
func fillHeadContent(shell, head string) string {
	return strings.Replace(shell, placeholderHead, head, 1)
}

// fillStyleContent substitutes the styles placeholder with raw CSS.
func fillStyleContent(shell, style string) string {
	return strings.Replace(shell, placeholderStyles, style, 1)
}

// fillBodyContent substitutes the body placeholder with raw body HTML.
func fillBodyContent(shell, body string) string {
	return strings.Replace(shell, placeholderBody, body, 1)
}

// fillOutline substitutes the outline placeholder with the outline panel.
func fillOutline(shell, outline string) string {
	return strings.Replace(shell, placeholderOutline, outline, 1)
}

// fillAppStyles substitutes the configuration-derived CSS block.
func fillAppStyles(shell, css string) string {
	return strings.Replace(shell, placeholderAppStyles, css, 1)
}

// generatePreviewTemplate produces the shell used to drive rendering in the
// embedded view. The configuration CSS and the rendering/highlight styles
// are folded in once; the content placeholders stay open for each export.
func generatePreviewTemplate(cfg *config.MarkdownEditorConfig, styleFile, highlightFile string, transparentBg bool) (string, error) {
	shell, err := assets.LoadTemplate(previewTemplateName)
	if err != nil {
		return "", err
	}

	css, err := buildAppStyles(cfg, styleFile, highlightFile, transparentBg)
	if err != nil {
		return "", err
	}

	return fillAppStyles(shell, css), nil
}

// generateExportTemplate produces the skeleton of the final export artifact.
// Extracted style content replaces the app styles at write time, so only the
// configuration CSS (and the outline styles when requested) is folded in.
func generateExportTemplate(cfg *config.MarkdownEditorConfig, addOutlinePanel bool) (string, error) {
	shell, err := assets.LoadTemplate(exportTemplateName)
	if err != nil {
		return "", err
	}

	css := buildConfigCSS(cfg, false)
	if addOutlinePanel {
		css += outlinePanelCSS
	} else {
		shell = fillOutline(shell, "")
	}

	return fillAppStyles(shell, css), nil
}

// buildAppStyles combines the configuration CSS with the rendering and
// syntax highlight styles.
func buildAppStyles(cfg *config.MarkdownEditorConfig, styleFile, highlightFile string, transparentBg bool) (string, error) {
	var buf strings.Builder

	buf.WriteString(buildConfigCSS(cfg, transparentBg))

	style, err := loadStyleContent(styleFile, cfg.RenderingStyle)
	if err != nil {
		return "", err
	}
	buf.WriteString("\n")
	buf.WriteString(style)

	highlight, err := loadStyleContent(highlightFile, cfg.SyntaxHighlightStyle)
	if err != nil {
		return "", err
	}
	buf.WriteString("\n")
	buf.WriteString(highlight)

	return buf.String(), nil
}

// buildConfigCSS renders the editor configuration as CSS.
func buildConfigCSS(cfg *config.MarkdownEditorConfig, transparentBg bool) string {
	background := cfg.BackgroundColor
	if transparentBg {
		background = "transparent"
	}

	return fmt.Sprintf(`body {
  font-family: %s;
  font-size: %dpx;
  line-height: %.2f;
  color: %s;
  background-color: %s;
  margin: 0;
}
`, cfg.FontFamily, cfg.FontSize, cfg.LineHeight, cfg.ForegroundColor, background)
}

// loadStyleContent resolves a CSS style. An empty argument loads the
// configured built-in, a bare name loads that built-in, and anything with a
// path separator is read from the filesystem.
func loadStyleContent(styleFile, builtinName string) (string, error) {
	if styleFile == "" {
		return assets.LoadStyle(builtinName)
	}
	if !fileutil.IsFilePath(styleFile) {
		return assets.LoadStyle(styleFile)
	}
	content, err := os.ReadFile(styleFile) // #nosec G304 -- style path is user-provided
	if err != nil {
		return "", fmt.Errorf("reading style file: %w", err)
	}
	return string(content), nil
}

// outlinePanelCSS styles the heading outline sidebar of exported pages.
const outlinePanelCSS = `
.outline-panel {
  position: fixed;
  top: 0;
  right: 0;
  width: 16rem;
  max-height: 100vh;
  overflow-y: auto;
  padding: 1rem;
  font-size: 0.85em;
  border-left: 1px solid #d8dee4;
}
.outline-panel ul {
  list-style: none;
  margin: 0;
  padding: 0;
}
.outline-panel a {
  text-decoration: none;
}
.outline-item-2 { padding-left: 1em; }
.outline-item-3 { padding-left: 2em; }
.outline-item-4 { padding-left: 3em; }
.outline-item-5 { padding-left: 4em; }
.outline-item-6 { padding-left: 5em; }
`
