package webexport

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// buildOutlinePanel extracts the headings of a body fragment and renders
// them as a sidebar navigation panel. Headings without an id are skipped
// since they cannot be linked. Returns "" when no linkable heading exists.
func buildOutlinePanel(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing body content: %w", err)
	}

	var buf strings.Builder
	count := 0

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || id == "" {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}

		level := headingLevel(goquery.NodeName(s))
		fmt.Fprintf(&buf, `<li class="outline-item-%d"><a href="#%s">%s</a></li>`,
			level, html.EscapeString(id), html.EscapeString(text))
		count++
	})

	if count == 0 {
		return "", nil
	}

	return `<nav class="outline-panel"><ul>` + buf.String() + `</ul></nav>`, nil
}

// headingLevel maps a heading tag name to its numeric level.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 1
}
