package webexport

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/vailmd/go-webexport/internal/pipeline"
	"github.com/vailmd/go-webexport/internal/webutil"
)

// defaultViewerTimeout bounds individual browser operations.
const defaultViewerTimeout = 30 * time.Second

// rodViewer renders markdown in a headless Chrome page via go-rod.
// Rod automatically downloads Chromium on first run if not found.
//
// The markdown "work" stage runs in-process (goldmark); the page only hosts
// the resulting DOM so fragments can be extracted from real layout state.
type rodViewer struct {
	timeout  time.Duration
	logf     func(format string, args ...any)
	renderer pipeline.MarkdownRenderer

	browser *rod.Browser
	page    *rod.Page

	mu      sync.Mutex
	baseURL *url.URL
	onLoad  func(ok bool)
	onWork  func()
	onFail  func()
}

// Compile-time interface check.
var _ viewer = (*rodViewer)(nil)

// newRodViewer creates a rodViewer. The browser is launched lazily on the
// first SetHTML call.
func newRodViewer(timeout time.Duration, logf func(format string, args ...any)) *rodViewer {
	return &rodViewer{
		timeout:  timeout,
		logf:     logf,
		renderer: pipeline.NewGoldmarkRenderer(),
	}
}

// ensureBrowser lazily launches and connects to the browser.
func (v *rodViewer) ensureBrowser() error {
	if v.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	v.browser = rod.New().ControlURL(u)
	if err := v.browser.Connect(); err != nil {
		v.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// SetHTML loads the preview shell into the page. The base URL is injected
// as a <base> element so relative references in the rendered content
// resolve against the note's location.
func (v *rodViewer) SetHTML(shell string, baseURL *url.URL) error {
	if err := v.ensureBrowser(); err != nil {
		return err
	}

	if v.page == nil {
		page, err := v.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPageCreate, err)
		}
		v.page = page
	}

	v.mu.Lock()
	v.baseURL = baseURL
	v.mu.Unlock()

	doc := shell
	if baseURL != nil {
		doc = injectBaseHref(shell, baseURL)
	}
	if err := v.page.SetDocumentContent(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	page := v.page
	go func() {
		err := page.Timeout(v.timeout).WaitLoad()
		if err != nil {
			v.logf("page load failed: %v", err)
		}
		v.fireLoad(err == nil)
	}()
	return nil
}

// SetText renders the markdown source and injects the result into the page.
// The work completion callback fires once the DOM holds the rendered body.
func (v *rodViewer) SetText(markdown string) error {
	if v.page == nil {
		return ErrNotPrepared
	}

	page := v.page
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
		defer cancel()

		fragment, err := v.renderer.Render(ctx, markdown)
		if err == nil {
			fragment, err = pipeline.AbsolutizeResourcePaths(fragment, v.noteDir())
		}
		if err != nil {
			v.logf("markdown rendering failed: %v", err)
			v.fireFail()
			return
		}

		_, err = page.Timeout(v.timeout).Eval(
			`(html) => { document.getElementById("content").innerHTML = html; }`, fragment)
		if err != nil {
			v.logf("injecting rendered content failed: %v", err)
			v.fireFail()
			return
		}
		v.fireWork()
	}()
	return nil
}

// OnLoadFinished registers the page load completion callback.
func (v *rodViewer) OnLoadFinished(fn func(ok bool)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onLoad = fn
}

// OnWorkFinished registers the render work completion callback.
func (v *rodViewer) OnWorkFinished(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onWork = fn
}

// OnRenderFailed registers the renderer error callback.
func (v *rodViewer) OnRenderFailed(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onFail = fn
}

// SaveContent extracts the rendered head, style and body fragments and
// delivers them to fn exactly once. Extraction failures deliver empty
// fragments, which the caller treats as failure.
func (v *rodViewer) SaveContent(fn func(Fragments)) error {
	if v.page == nil {
		return ErrNotPrepared
	}

	go func() {
		frags, err := v.extractFragments()
		if err != nil {
			v.logf("content extraction failed: %v", err)
			fn(Fragments{})
			return
		}
		fn(frags)
	}()
	return nil
}

// Close destroys the page and the browser.
func (v *rodViewer) Close() error {
	if v.page != nil {
		if err := v.page.Close(); err != nil {
			v.logf("closing page: %v", err)
		}
		v.page = nil
	}
	if v.browser != nil {
		err := v.browser.Close()
		v.browser = nil
		return err
	}
	return nil
}

// extractFragments pulls the head, style and body content out of the live
// DOM.
func (v *rodViewer) extractFragments() (Fragments, error) {
	head, err := v.evalString(`() => {
		const head = document.head.cloneNode(true);
		head.querySelectorAll("style, title, base").forEach((n) => n.remove());
		return head.innerHTML;
	}`)
	if err != nil {
		return Fragments{}, err
	}

	style, err := v.evalString(`() => Array.from(document.querySelectorAll("head style"))
		.map((n) => n.textContent)
		.join("\n")`)
	if err != nil {
		return Fragments{}, err
	}

	body, err := v.evalString(`() => {
		const content = document.getElementById("content");
		return content ? content.outerHTML : "";
	}`)
	if err != nil {
		return Fragments{}, err
	}

	return Fragments{Head: head, Style: style, Body: body}, nil
}

// evalString evaluates a JS expression on the page and returns its string
// result.
func (v *rodViewer) evalString(js string) (string, error) {
	obj, err := v.page.Timeout(v.timeout).Eval(js)
	if err != nil {
		return "", err
	}
	return obj.Value.Str(), nil
}

// noteDir returns the directory of the base URL's file path, or "" when no
// filesystem base is set.
func (v *rodViewer) noteDir() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.baseURL == nil || v.baseURL.Scheme != "file" {
		return ""
	}
	return filepath.Dir(webutil.FileURLPath(v.baseURL))
}

func (v *rodViewer) fireLoad(ok bool) {
	v.mu.Lock()
	fn := v.onLoad
	v.mu.Unlock()
	if fn != nil {
		fn(ok)
	}
}

func (v *rodViewer) fireWork() {
	v.mu.Lock()
	fn := v.onWork
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (v *rodViewer) fireFail() {
	v.mu.Lock()
	fn := v.onFail
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// injectBaseHref inserts a <base> element after <head> so the page resolves
// relative references against the note's location.
func injectBaseHref(shell string, baseURL *url.URL) string {
	baseTag := `<base href="` + baseURL.String() + `">`
	lowerShell := strings.ToLower(shell)

	if idx := strings.Index(lowerShell, "<head>"); idx != -1 {
		insertPos := idx + len("<head>")
		return shell[:insertPos] + baseTag + shell[insertPos:]
	}

	// Fallback: prepend
	return baseTag + shell
}
