package webexport

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vailmd/go-webexport/internal/config"
	"github.com/vailmd/go-webexport/internal/webutil"
)

// Exporter drives the HTML export pipeline: it owns the embedded viewer,
// the generated template shells, and the render completion state.
//
// Lifecycle: New -> Prepare -> Export (repeatedly) -> Clear. The viewer is
// created in Prepare and destroyed in Clear; all exports in between share
// it. At most one export runs at a time per Exporter.
type Exporter struct {
	cfg   exporterConfig
	state renderState

	// newViewer creates the embedded viewer. Overridable by tests.
	newViewer func() viewer

	toDataURI    dataURIFunc
	copyResource copyResourceFunc

	viewer          viewer
	previewTemplate string
	exportTemplate  string

	ongoing atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates an Exporter with default configuration.
// Use options to customize behavior (e.g., WithLogf).
func New(opts ...Option) *Exporter {
	e := &Exporter{
		cfg: exporterConfig{
			pollInterval: defaultPollInterval,
			settleDelay:  defaultSettleDelay,
			logf:         func(string, ...any) {},
		},
		toDataURI:    webutil.ToDataURI,
		copyResource: webutil.CopyResource,
	}

	for _, opt := range opts {
		opt(e)
	}

	// Create the viewer factory if not injected (e.g., by tests)
	if e.newViewer == nil {
		e.newViewer = func() viewer {
			return newRodViewer(defaultViewerTimeout, e.cfg.logf)
		}
	}

	return e
}

// Prepare constructs the embedded viewer, wires its completion signals into
// the render state, and generates the preview and export template shells.
// Must be called exactly once before Export; call Clear before preparing
// again.
func (e *Exporter) Prepare(opt ExportOption) error {
	if e.ongoing.Load() {
		return ErrExportOngoing
	}
	if e.viewer != nil {
		return ErrAlreadyPrepared
	}
	if err := opt.Validate(); err != nil {
		return err
	}

	edcfg := config.Default()
	if e.cfg.configFile != "" {
		loaded, err := config.Load(e.cfg.configFile)
		if err != nil {
			return err
		}
		edcfg = loaded
	}

	preview, err := generatePreviewTemplate(edcfg,
		opt.RenderingStyleFile,
		opt.SyntaxHighlightStyleFile,
		opt.TransparentBackground)
	if err != nil {
		return err
	}

	export, err := generateExportTemplate(edcfg, opt.HTML.AddOutlinePanel)
	if err != nil {
		return err
	}

	v := e.newViewer()
	v.OnLoadFinished(func(ok bool) {
		if ok {
			e.state.MarkLoadFinished()
		} else {
			e.state.MarkFailed()
		}
	})
	v.OnWorkFinished(e.state.MarkWorkFinished)
	v.OnRenderFailed(e.state.MarkFailed)

	e.viewer = v
	e.previewTemplate = preview
	e.exportTemplate = export
	return nil
}

// Export renders the document in the embedded viewer and writes the HTML
// artifact to outputPath. It blocks until the render completes, the
// renderer fails, or the context is cancelled (also via Stop).
//
// Returns a nil error only when a usable artifact was written.
func (e *Exporter) Export(ctx context.Context, opt ExportOption, doc Document, outputPath string) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	if !doc.IsMarkdown() {
		return ErrNotMarkdown
	}
	if e.viewer == nil {
		return ErrNotPrepared
	}
	if !e.ongoing.CompareAndSwap(false, true) {
		return ErrExportOngoing
	}
	defer e.ongoing.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.setCancel(cancel)
	defer e.setCancel(nil)

	e.state.Reset()

	baseURL := doc.BaseURL()
	if err := e.viewer.SetHTML(e.previewTemplate, baseURL); err != nil {
		return err
	}
	if err := e.viewer.SetText(doc.Content); err != nil {
		return err
	}

	if err := e.waitUntilReady(ctx); err != nil {
		if errors.Is(err, ErrRenderFailed) {
			e.cfg.logf("renderer failed when exporting %s", doc.Path)
		}
		return err
	}

	// Extra wait to make sure the web side is really ready.
	select {
	case <-time.After(e.cfg.settleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	switch opt.TargetFormat {
	case FormatHTML:
		return e.exportHTML(ctx, *opt.HTML, doc, outputPath)
	default:
		return ErrUnsupportedFormat
	}
}

// Stop requests cooperative cancellation of an in-flight export. The export
// aborts at its next checkpoint; the renderer itself is not interrupted.
func (e *Exporter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Clear tears the exporter down: cancels any pending intent, destroys the
// viewer, and clears both template shells. Idempotent and safe to call when
// nothing was prepared.
func (e *Exporter) Clear() {
	e.Stop()

	if e.viewer != nil {
		if err := e.viewer.Close(); err != nil {
			e.cfg.logf("closing viewer: %v", err)
		}
		e.viewer = nil
	}

	e.previewTemplate = ""
	e.exportTemplate = ""
	e.ongoing.Store(false)
}

// waitUntilReady polls the render state at the configured interval until
// the page is ready, the renderer failed, or ctx is cancelled. There is no
// timeout beyond cancellation: a renderer that never signals blocks until
// asked to stop.
func (e *Exporter) waitUntilReady(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.pollInterval)
	defer ticker.Stop()

	for {
		if e.state.Failed() {
			return ErrRenderFailed
		}
		if e.state.Ready() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// exportHTML requests content extraction from the viewer and hands the
// delivered fragments to the file writer. Delivery happens at most once per
// request (the viewer detaches the handler after the first invocation), so
// a single-resolution channel bridges the asynchronous hand-off.
func (e *Exporter) exportHTML(ctx context.Context, opt HTMLOption, doc Document, outputPath string) error {
	resultc := make(chan Fragments, 1)
	if err := e.viewer.SaveContent(func(frags Fragments) {
		resultc <- frags
	}); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case frags := <-resultc:
		if frags.Body == "" {
			return ErrEmptyContent
		}
		// Cancellation observed at delivery time is still failure.
		if err := ctx.Err(); err != nil {
			return err
		}

		w := &htmlWriter{
			template:     e.exportTemplate,
			toDataURI:    e.toDataURI,
			copyResource: e.copyResource,
			logf:         e.cfg.logf,
		}
		return w.Write(outputPath, doc.BaseURL(), frags, opt)
	}
}

func (e *Exporter) setCancel(cancel context.CancelFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancel = cancel
}
