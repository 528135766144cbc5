package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// exportFlags holds all CLI flags.
type exportFlags struct {
	output  string
	workers int
	config  string
	quiet   bool
	verbose bool

	// HTML target options.
	embedStyles  bool
	completePage bool
	embedImages  bool
	outline      bool
	mimeHTML     bool

	// Rendering options.
	style          string
	highlightStyle string
	transparentBg  bool
}

// parseFlags parses CLI flags and returns the positional arguments
// (markdown input files).
func parseFlags(args []string) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("webexport", flag.ContinueOnError)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: next to input)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.config, "config", "c", "", "editor config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")

	fs.BoolVar(&f.embedStyles, "embed-styles", true, "inline style resources as data URIs")
	fs.BoolVar(&f.completePage, "complete-page", true, "export referenced resources along with the page")
	fs.BoolVar(&f.embedImages, "embed-images", true, "inline images as data URIs (with --complete-page)")
	fs.BoolVar(&f.outline, "outline", false, "add a heading outline panel")
	fs.BoolVar(&f.mimeHTML, "mime-html", false, "export a single MIME-HTML file (not supported yet)")

	fs.StringVar(&f.style, "style", "", "rendering CSS file path or built-in name (default: built-in)")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "syntax highlight CSS file path or built-in name (default: built-in)")
	fs.BoolVar(&f.transparentBg, "transparent-bg", false, "render without a background color")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the CLI usage text.
func printUsage(w *os.File, fs *flag.FlagSet) {
	fmt.Fprintf(w, `webexport - export markdown notes to self-contained HTML

Usage:
  webexport [flags] <note.md> [more.md ...]

Flags:
%s`, fs.FlagUsages())
}
