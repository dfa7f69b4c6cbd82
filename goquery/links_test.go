package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanakrit-d/siterag/goquery"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	base := "https://example.com/forum"

	t.Run("resolves relative links against the base URL", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/forum/topic-1">One</a><a href="topic-2">Two</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, base)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/forum/topic-1",
			"https://example.com/topic-2",
		}, links)
	})

	t.Run("filters links from other hosts", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="https://example.com/forum/local">Local</a>
			<a href="https://other.com/page">External</a>
			<a href="https://sub.example.com/page">Subdomain</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, base)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/forum/local"}, links)
	})

	t.Run("deduplicates links", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="/forum/topic">First</a>
			<a href="/forum/topic">Again</a>
			<a href="/forum/topic#section">Fragment variant</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, base)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/forum/topic"}, links)
	})

	t.Run("skips non-HTTP schemes", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="javascript:void(0)">JS</a>
			<a href="mailto:someone@example.com">Mail</a>
			<a href="tel:+123456789">Call</a>
			<a href="/forum/real">Real</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, base)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/forum/real"}, links)
	})

	t.Run("returns nothing for pages without anchors", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkExtractor().ExtractLinks("<p>no links</p>", base)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("rejects an invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkExtractor().ExtractLinks("<a href='/a'>a</a>", "://bad")

		require.Error(t, err)
	})
}
