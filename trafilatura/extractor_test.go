package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanakrit-d/siterag/trafilatura"
)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content and drops chrome", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Topic</title></head><body>
			<nav><a href="/">Home</a><a href="/forum">Forum</a></nav>
			<article>
				<h1>Managing blood sugar</h1>
				<p>` + strings.Repeat("Patients should favor low glycemic foods and regular meals. ", 8) + `</p>
				<p>` + strings.Repeat("Regular exercise also helps with glucose control over time. ", 8) + `</p>
			</article>
			<footer>Copyright</footer>
		</body></html>`

		text, err := trafilatura.NewExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "low glycemic foods")
		assert.Contains(t, text, "glucose control")
		assert.NotContains(t, text, "Copyright")
	})

	t.Run("separates blocks with blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
			<p>` + strings.Repeat("First block of real content with enough words to keep. ", 6) + `</p>
			<p>` + strings.Repeat("Second block of real content with enough words to keep. ", 6) + `</p>
		</article></body></html>`

		text, err := trafilatura.NewExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "\n\n")
		assert.NotContains(t, text, "\n\n\n")
	})

	t.Run("returns empty text for empty input", func(t *testing.T) {
		t.Parallel()

		text, err := trafilatura.NewExtractor().ExtractText("")

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("degrades to empty text when no content is found", func(t *testing.T) {
		t.Parallel()

		text, err := trafilatura.NewExtractor().ExtractText("<html><body></body></html>")

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
