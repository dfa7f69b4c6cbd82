package mock

import "github.com/tanakrit-d/siterag"

var _ siterag.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of siterag.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

var _ siterag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of siterag.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
