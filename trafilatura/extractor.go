// Package trafilatura provides an article-mode implementation of
// siterag.TextExtractor. Unlike the DOM extractor, it applies boilerplate
// heuristics beyond the fixed script/style/header/footer/nav set, which
// suits pages with heavy chrome at the cost of occasionally trimming
// borderline content.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/tanakrit-d/siterag"
	"golang.org/x/net/html"
)

// Ensure Extractor implements siterag.TextExtractor at compile time.
var _ siterag.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main article content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText extracts the main content of the page and normalizes it into
// trimmed non-empty lines joined with blank-line separators. Pages where no
// main content can be identified yield empty text, not an error.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		// Extraction failure degrades to an unindexed page.
		return "", nil
	}

	text := result.ContentText
	if text == "" && result.ContentNode != nil {
		text = nodeText(result.ContentNode)
	}

	return normalize(text), nil
}

// nodeText collects the text content of an html.Node subtree with newline
// separators between text nodes.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString("\n")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// normalize collapses text into trimmed non-empty lines joined by blank
// lines, matching the DOM extractor's output shape.
func normalize(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n\n")
}
