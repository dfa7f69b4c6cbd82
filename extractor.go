package siterag

// TextExtractor extracts readable text from an HTML page.
type TextExtractor interface {
	// ExtractText parses the HTML, removes script, style, header, footer and
	// nav subtrees, and returns the remaining text as trimmed non-empty lines
	// joined with blank-line separators. Malformed HTML degrades to partial
	// or empty text, not an error.
	ExtractText(html string) (string, error)
}

// LinkExtractor discovers crawlable links on an HTML page.
type LinkExtractor interface {
	// ExtractLinks resolves every anchor href against baseURL and returns the
	// deduplicated set of links whose host exactly matches baseURL's host.
	// Fragments are stripped before deduplication.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
