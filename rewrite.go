package webexport

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// dataURIFunc converts a resolved resource URL to a data URI.
type dataURIFunc func(target *url.URL) (string, error)

// copyResourceFunc copies the resource behind target into folder and returns
// the absolute path of the copy. The copy must keep the resource's base
// name directly under folder; the relative path rewrite derives the last
// two path segments from the returned value.
type copyResourceFunc func(target *url.URL, folder string) (string, error)

// styleURLPattern matches quoted file:/qrc: URLs in CSS url() declarations.
var styleURLPattern = regexp.MustCompile(`\burl\("((?:file|qrc):[^")]+)"\);`)

// imgTagPattern matches img tags, capturing pre-src attributes, the src
// value, and post-src attributes.
var imgTagPattern = regexp.MustCompile(`<img ([^>]*)src="([^"]+)"([^>]*)>`)

// embedStyleResources replaces url("file:...") and url("qrc:...") references
// in style content with data URIs. References that fail conversion are left
// untouched. Scans left to right with a forward-only cursor, so pathological
// input cannot loop. Reports whether any substitution occurred.
func embedStyleResources(style string, toDataURI dataURIFunc) (string, bool) {
	altered := false
	var out strings.Builder
	pos := 0

	for pos < len(style) {
		loc := styleURLPattern.FindStringSubmatchIndex(style[pos:])
		if loc == nil {
			break
		}
		matchStart, matchEnd := pos+loc[0], pos+loc[1]
		rawURL := style[pos+loc[2] : pos+loc[3]]
		out.WriteString(style[pos:matchStart])

		dataURI := convertToDataURI(rawURL, nil, toDataURI)
		if dataURI == "" {
			out.WriteString(style[matchStart:matchEnd])
		} else {
			out.WriteString("url('" + dataURI + "');")
			altered = true
		}
		pos = matchEnd
	}

	out.WriteString(style[pos:])
	return out.String(), altered
}

// embedBodyResources replaces img sources in body content with data URIs,
// resolving each source against the base URL. Tags with an unresolvable or
// unconvertible source are left untouched. Same forward-only scanning
// discipline as embedStyleResources.
func embedBodyResources(base *url.URL, body string, toDataURI dataURIFunc) (string, bool) {
	if base == nil {
		return body, false
	}

	altered := false
	var out strings.Builder
	pos := 0

	for pos < len(body) {
		loc := imgTagPattern.FindStringSubmatchIndex(body[pos:])
		if loc == nil {
			break
		}
		matchStart, matchEnd := pos+loc[0], pos+loc[1]
		pre := body[pos+loc[2] : pos+loc[3]]
		src := body[pos+loc[4] : pos+loc[5]]
		post := body[pos+loc[6] : pos+loc[7]]
		out.WriteString(body[pos:matchStart])

		dataURI := convertToDataURI(src, base, toDataURI)
		if dataURI == "" {
			out.WriteString(body[matchStart:matchEnd])
		} else {
			out.WriteString("<img " + pre + "src='" + dataURI + "'" + post + ">")
			altered = true
		}
		pos = matchEnd
	}

	out.WriteString(body[pos:])
	return out.String(), altered
}

// fixBodyResources copies img resources into folder and rewrites each src to
// a path relative to the output file's directory. Tags whose resource cannot
// be copied are left untouched. Same scanning discipline as
// embedBodyResources.
func fixBodyResources(base *url.URL, folder, body string, copyRes copyResourceFunc) (string, bool) {
	if base == nil {
		return body, false
	}

	altered := false
	var out strings.Builder
	pos := 0

	for pos < len(body) {
		loc := imgTagPattern.FindStringSubmatchIndex(body[pos:])
		if loc == nil {
			break
		}
		matchStart, matchEnd := pos+loc[0], pos+loc[1]
		pre := body[pos+loc[2] : pos+loc[3]]
		src := body[pos+loc[4] : pos+loc[5]]
		post := body[pos+loc[6] : pos+loc[7]]
		out.WriteString(body[pos:matchStart])

		copied := copyToFolder(src, base, folder, copyRes)
		if copied == "" {
			out.WriteString(body[matchStart:matchEnd])
		} else {
			out.WriteString(`<img ` + pre + `src="` + resourceRelativePath(copied) + `"` + post + `>`)
			altered = true
		}
		pos = matchEnd
	}

	out.WriteString(body[pos:])
	return out.String(), altered
}

// convertToDataURI resolves rawURL (against base when given) and converts it
// to a data URI. Returns "" on any failure.
func convertToDataURI(rawURL string, base *url.URL, toDataURI dataURIFunc) string {
	target, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if base != nil {
		target = base.ResolveReference(target)
	}
	dataURI, err := toDataURI(target)
	if err != nil {
		return ""
	}
	return dataURI
}

// copyToFolder resolves src against base and copies the resource into
// folder. Returns the copied absolute path, or "" on any failure.
func copyToFolder(src string, base *url.URL, folder string, copyRes copyResourceFunc) string {
	target, err := url.Parse(src)
	if err != nil {
		return ""
	}
	copied, err := copyRes(base.ResolveReference(target), folder)
	if err != nil {
		return ""
	}
	return copied
}

// resourceRelativePath rebuilds a copied resource path as "./<dir>/<name>"
// from its last two path segments, relative to the output file's directory.
func resourceRelativePath(copied string) string {
	p := filepath.ToSlash(copied)
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "./" + p
	}
	idx2 := strings.LastIndex(p[:idx], "/")
	if idx2 < 0 {
		return "./" + p
	}
	return "." + p[idx2:]
}
