// Package goquery provides DOM-based text and link extraction built on
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tanakrit-d/siterag"
	"golang.org/x/net/html"
)

// boilerplateSelector matches subtrees that never contribute indexable
// content.
const boilerplateSelector = "script, style, header, footer, nav"

// Ensure Extractor implements siterag.TextExtractor at compile time.
var _ siterag.TextExtractor = (*Extractor)(nil)

// Extractor extracts readable text from HTML by dropping boilerplate
// subtrees and collapsing the remaining text into blank-line separated
// paragraph lines.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the page's text with script, style, header, footer and
// nav subtrees removed. Each remaining non-empty line is trimmed and lines
// are rejoined with blank-line separators. Malformed HTML degrades to
// partial or empty output rather than an error.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", siterag.Errorf(siterag.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	var lines []string
	for _, node := range doc.Selection.Nodes {
		collectLines(node, &lines)
	}

	return strings.Join(lines, "\n\n"), nil
}

// collectLines appends the trimmed non-empty lines of every text node under
// n, in document order. Visiting text nodes individually keeps text from
// adjacent elements on separate lines.
func collectLines(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		for _, line := range strings.Split(n.Data, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				*lines = append(*lines, trimmed)
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLines(c, lines)
	}
}
