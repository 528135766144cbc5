package webexport

import "net/url"

// viewer abstracts the embedded browser view that renders markdown.
//
// Implementations load a template shell, accept markdown text, and report
// progress through the registered callbacks:
//
//   - the load callback fires once the shell page finished loading
//     (ok=false when loading failed);
//   - the work callback fires once render/highlight work completed;
//   - the content callback fires at most once per SaveContent request,
//     carrying the extracted fragments, and is detached after delivery.
//
// Callbacks may fire from renderer goroutines.
type viewer interface {
	// SetHTML loads the template shell into the view. baseURL is the base
	// for resolving relative resource references of the rendered content.
	SetHTML(shell string, baseURL *url.URL) error

	// SetText feeds the markdown source to render.
	SetText(markdown string) error

	// OnLoadFinished registers the page load completion callback.
	OnLoadFinished(fn func(ok bool))

	// OnWorkFinished registers the render work completion callback.
	OnWorkFinished(fn func())

	// OnRenderFailed registers the renderer error callback. It may fire at
	// any point of an export.
	OnRenderFailed(fn func())

	// SaveContent requests extraction of the rendered head, style and body
	// fragments. The result is delivered once to fn, which then detaches.
	SaveContent(fn func(Fragments)) error

	// Close destroys the view and releases browser resources.
	Close() error
}
