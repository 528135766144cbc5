package webexport

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/vailmd/go-webexport/internal/fileutil"
)

// htmlWriter assembles the final HTML artifact from the export template
// shell and the extracted fragments.
type htmlWriter struct {
	template     string
	toDataURI    dataURIFunc
	copyResource copyResourceFunc
	logf         func(format string, args ...any)
}

// Write fills the export shell with the fragments, rewrites resources per
// the option, and writes the result to outputPath. When resources are
// copied rather than inlined they land in a sibling "<basename>_files"
// folder, which is removed again if it ends up empty.
func (w *htmlWriter) Write(outputPath string, baseURL *url.URL, frags Fragments, opt HTMLOption) error {
	baseName := fileutil.CompleteBaseName(outputPath)
	title := fmt.Sprintf("%s - %s", baseName, appName)
	resourceFolder := filepath.Join(filepath.Dir(outputPath), baseName+"_files")

	shell := fillTitle(w.template, title)

	if frags.Style != "" {
		style := frags.Style
		if opt.EmbedStyles {
			style, _ = embedStyleResources(style, w.toDataURI)
		}
		shell = fillStyleContent(shell, style)
	}

	if frags.Head != "" {
		shell = fillHeadContent(shell, frags.Head)
	}

	body := frags.Body
	if opt.CompletePage {
		if opt.EmbedImages {
			body, _ = embedBodyResources(baseURL, body, w.toDataURI)
		} else {
			body, _ = fixBodyResources(baseURL, resourceFolder, body, w.copyResource)
		}
	}

	if opt.AddOutlinePanel {
		outline, err := buildOutlinePanel(body)
		if err != nil {
			w.logf("outline panel skipped: %v", err)
		} else if outline != "" {
			shell = fillOutline(shell, outline)
		}
	}

	shell = fillBodyContent(shell, body)

	if err := fileutil.WriteFile(outputPath, shell); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	// A resource folder nothing was copied into is noise next to the
	// artifact.
	if err := fileutil.RemoveDirIfEmpty(resourceFolder); err != nil {
		w.logf("could not remove empty resource folder %s: %v", resourceFolder, err)
	}

	return nil
}
