package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vailmd/go-webexport"
	"github.com/vailmd/go-webexport/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInputs         = errors.New("no input files given")
	ErrInvalidExtension = errors.New("file must have a markdown extension")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrOutputConflict   = errors.New("-o must be a directory when exporting multiple files")
)

// exporterPool is the subset of ExporterPool used by run, extracted for
// testing.
type exporterPool interface {
	Acquire() (*webexport.Exporter, error)
	Release(exp *webexport.Exporter)
}

// run exports every input file through the pool and reports the first
// failure (all inputs are attempted regardless).
func run(ctx context.Context, flags *exportFlags, inputs []string, opt webexport.ExportOption, pool exporterPool) error {
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	if len(inputs) > 1 && flags.output != "" && !fileutil.DirExists(flags.output) {
		return ErrOutputConflict
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, input := range inputs {
		doc, err := readDocument(input)
		if err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			continue
		}

		outputPath := resolveOutputPath(input, flags.output)

		wg.Add(1)
		go func() {
			defer wg.Done()

			exp, err := pool.Acquire()
			if err == nil {
				defer pool.Release(exp)
				err = exp.Export(ctx, opt, doc, outputPath)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("exporting %s: %w", doc.Path, err))
				return
			}
			if !flags.quiet {
				fmt.Printf("Exported %s\n", outputPath)
			}
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}

// readDocument loads a markdown input file.
func readDocument(path string) (webexport.Document, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".md" && ext != ".markdown" && ext != ".mkd" {
		return webexport.Document{}, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}

	content, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return webexport.Document{}, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	return webexport.Document{Path: path, Content: string(content)}, nil
}

// resolveOutputPath derives the output HTML path for an input file.
// An empty output means a sibling .html file; a directory output keeps the
// input base name; anything else is used verbatim.
func resolveOutputPath(input, output string) string {
	htmlName := fileutil.CompleteBaseName(input) + ".html"

	switch {
	case output == "":
		return filepath.Join(filepath.Dir(input), htmlName)
	case fileutil.DirExists(output):
		return filepath.Join(output, htmlName)
	default:
		return output
	}
}

// buildExportOption maps CLI flags to an ExportOption.
func buildExportOption(flags *exportFlags) webexport.ExportOption {
	return webexport.ExportOption{
		TargetFormat: webexport.FormatHTML,
		HTML: &webexport.HTMLOption{
			EmbedStyles:       flags.embedStyles,
			CompletePage:      flags.completePage,
			EmbedImages:       flags.embedImages,
			AddOutlinePanel:   flags.outline,
			UseMimeHTMLFormat: flags.mimeHTML,
		},
		RenderingStyleFile:       flags.style,
		SyntaxHighlightStyleFile: flags.highlightStyle,
		TransparentBackground:    flags.transparentBg,
	}
}
