package webexport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vailmd/go-webexport/internal/config"
)

func TestFillFunctionsReplaceFirstOccurrenceOnly(t *testing.T) {
	shell := placeholderBody + " " + placeholderBody

	got := fillBodyContent(shell, "X")

	if got != "X "+placeholderBody {
		t.Errorf("fill must replace only the first occurrence, got %q", got)
	}
}

func TestFillTitleEscapes(t *testing.T) {
	got := fillTitle("<title>"+placeholderTitle+"</title>", `a <"b"> & c`)

	want := "<title>a &lt;&#34;b&#34;&gt; &amp; c</title>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFillLeavesShellWithoutPlaceholderUntouched(t *testing.T) {
	shell := "<html><body>fixed</body></html>"

	if got := fillStyleContent(shell, "body{}"); got != shell {
		t.Errorf("shell without placeholder must pass through, got %q", got)
	}
}

func TestGeneratePreviewTemplate(t *testing.T) {
	cfg := config.Default()

	shell, err := generatePreviewTemplate(cfg, "", "", false)
	if err != nil {
		t.Fatalf("generatePreviewTemplate: %v", err)
	}

	if !strings.Contains(shell, `id="content"`) {
		t.Error("preview shell must carry the content mount point")
	}
	if !strings.Contains(shell, "font-family: "+cfg.FontFamily) {
		t.Error("expected editor configuration CSS in preview shell")
	}
	if strings.Contains(shell, placeholderAppStyles) {
		t.Error("app styles placeholder must be consumed")
	}
}

func TestGeneratePreviewTemplate_TransparentBackground(t *testing.T) {
	shell, err := generatePreviewTemplate(config.Default(), "", "", true)
	if err != nil {
		t.Fatalf("generatePreviewTemplate: %v", err)
	}

	if !strings.Contains(shell, "background-color: transparent") {
		t.Error("expected transparent background in configuration CSS")
	}
}

func TestGeneratePreviewTemplate_ExplicitStyleFile(t *testing.T) {
	styleFile := filepath.Join(t.TempDir(), "custom.css")
	custom := ".custom-marker { color: teal; }"
	if err := os.WriteFile(styleFile, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	shell, err := generatePreviewTemplate(config.Default(), styleFile, "", false)
	if err != nil {
		t.Fatalf("generatePreviewTemplate: %v", err)
	}

	if !strings.Contains(shell, custom) {
		t.Error("expected explicit style file content in preview shell")
	}
}

func TestGeneratePreviewTemplate_BuiltinStyleName(t *testing.T) {
	shell, err := generatePreviewTemplate(config.Default(), "default", "highlight", false)
	if err != nil {
		t.Fatalf("generatePreviewTemplate: %v", err)
	}

	if !strings.Contains(shell, ".markdown-body") {
		t.Error("expected built-in rendering style in preview shell")
	}
}

func TestGeneratePreviewTemplate_UnknownBuiltinName(t *testing.T) {
	_, err := generatePreviewTemplate(config.Default(), "no-such-style", "", false)

	if err == nil {
		t.Error("expected error for unknown built-in style name")
	}
}

func TestGeneratePreviewTemplate_MissingStyleFile(t *testing.T) {
	_, err := generatePreviewTemplate(config.Default(), filepath.Join(t.TempDir(), "absent.css"), "", false)

	if err == nil {
		t.Error("expected error for missing style file")
	}
}

func TestGenerateExportTemplate_OutlineDisabled(t *testing.T) {
	shell, err := generateExportTemplate(config.Default(), false)
	if err != nil {
		t.Fatalf("generateExportTemplate: %v", err)
	}

	if strings.Contains(shell, placeholderOutline) {
		t.Error("outline placeholder must be cleared when the panel is disabled")
	}
	if strings.Contains(shell, ".outline-panel") {
		t.Error("outline CSS must not be folded in when the panel is disabled")
	}
	if !strings.Contains(shell, placeholderBody) {
		t.Error("body placeholder must stay open")
	}
	if !strings.Contains(shell, placeholderStyles) {
		t.Error("styles placeholder must stay open")
	}
	if !strings.Contains(shell, placeholderTitle) {
		t.Error("title placeholder must stay open")
	}
}

func TestGenerateExportTemplate_OutlineEnabled(t *testing.T) {
	shell, err := generateExportTemplate(config.Default(), true)
	if err != nil {
		t.Fatalf("generateExportTemplate: %v", err)
	}

	if !strings.Contains(shell, placeholderOutline) {
		t.Error("outline placeholder must stay open for write-time filling")
	}
	if !strings.Contains(shell, ".outline-panel") {
		t.Error("expected outline CSS in export shell")
	}
}

func TestBuildConfigCSS(t *testing.T) {
	cfg := &config.MarkdownEditorConfig{
		FontFamily:      "serif",
		FontSize:        14,
		LineHeight:      1.5,
		BackgroundColor: "#ffffff",
		ForegroundColor: "#222222",
	}

	css := buildConfigCSS(cfg, false)

	for _, want := range []string{
		"font-family: serif",
		"font-size: 14px",
		"line-height: 1.50",
		"color: #222222",
		"background-color: #ffffff",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("missing %q in configuration CSS:\n%s", want, css)
		}
	}
}
