// Package webexport exports markdown notes to self-contained HTML using an
// embedded browser.
//
// # Quick Start
//
// Create an exporter, prepare it once, export documents, and clear when done:
//
//	exp := webexport.New()
//	defer exp.Clear()
//
//	opt := webexport.ExportOption{
//	    TargetFormat: webexport.FormatHTML,
//	    HTML:         &webexport.HTMLOption{EmbedStyles: true, CompletePage: true, EmbedImages: true},
//	}
//	if err := exp.Prepare(opt); err != nil {
//	    log.Fatal(err)
//	}
//	doc := webexport.Document{Path: "note.md", Content: "# Hello\n\nWorld"}
//	if err := exp.Export(ctx, opt, doc, "note.html"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Export Pipeline
//
// The export process follows these stages:
//
//  1. Template preparation (preview and export shells from the editor config)
//  2. Document rendering in a headless browser page (go-rod)
//  3. Readiness wait (page load and render work completion, polled)
//  4. Fragment extraction (head, style, body of the rendered document)
//  5. Resource rewriting (inline data URIs or a sibling resource folder)
//  6. Final template assembly and file write
//
// A single Exporter runs one export at a time. Export blocks until the
// rendered page is ready, the renderer fails, or the context is cancelled;
// Stop cancels an in-flight export at its next checkpoint.
//
// # Batch Export
//
// For exporting many notes, use ExporterPool to manage multiple browser
// instances:
//
//	pool := webexport.NewExporterPool(4, opt)
//	defer pool.Close()
//
//	exp, err := pool.Acquire()
//	defer pool.Release(exp)
//
// # Browser Requirements
//
// Rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set CI=true to disable the Chrome
// sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package webexport
