package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AbsolutizeResourcePaths rewrites relative image sources in a rendered body
// fragment to absolute file:// URLs resolved against the note's directory,
// so the live preview page can display them. If noteDir is empty, the
// fragment is returned unchanged.
//
// Only img[src] is rewritten. Links, media elements, and CSS url()
// references are left alone: the preview does not follow them and the
// export stages resolve them against the base URL instead.
func AbsolutizeResourcePaths(fragment, noteDir string) (string, error) {
	if noteDir == "" {
		return fragment, nil
	}

	absDir, err := filepath.Abs(noteDir)
	if err != nil {
		return "", err
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		walkImages(n, func(img *html.Node) {
			rewriteSrc(img, absDir)
		})
	}

	return renderNodes(nodes)
}

// parseFragment parses a body fragment without wrapping it in a document.
func parseFragment(fragment string) ([]*html.Node, error) {
	bodyCtx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(fragment), bodyCtx)
}

// renderNodes renders parsed nodes back to a fragment string.
func renderNodes(nodes []*html.Node) (string, error) {
	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walkImages calls fn for every img element in the tree rooted at n.
func walkImages(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkImages(c, fn)
	}
}

// rewriteSrc replaces a relative src attribute with a file:// URL under dir.
// Paths escaping dir are left untouched.
func rewriteSrc(img *html.Node, dir string) {
	for i, attr := range img.Attr {
		if attr.Key != "src" || !isRelativeResource(attr.Val) {
			continue
		}

		abs := filepath.Join(dir, filepath.FromSlash(attr.Val))
		if !isUnderDir(abs, dir) {
			continue
		}

		u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
		img.Attr[i].Val = u.String()
	}
}

// isRelativeResource reports whether a src value is a relative path that
// should be absolutized. URLs, data URIs, anchors, and absolute paths are
// already resolvable.
func isRelativeResource(src string) bool {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "//") {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "qrc:", "data:"} {
		if strings.HasPrefix(src, prefix) {
			return false
		}
	}
	return !filepath.IsAbs(src)
}

// isUnderDir reports whether abs is inside dir after cleaning.
func isUnderDir(abs, dir string) bool {
	rel, err := filepath.Rel(dir, filepath.Clean(abs))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
