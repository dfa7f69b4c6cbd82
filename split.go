package siterag

import "strings"

// DefaultChunkSize is the target maximum chunk length in bytes.
const DefaultChunkSize = 1500

// breakThreshold is the fraction of a window past which a paragraph or
// sentence break is considered a good cut point. Breaks earlier than this
// would produce lopsided chunks, so the scan falls through to the next
// strategy instead.
const breakThreshold = 0.3

// SplitText splits text into chunks of at most maxSize bytes, preferring to
// cut at paragraph breaks, then at sentence breaks. The split is best-effort:
// when a window contains no acceptable break point it is cut at the hard
// boundary, and the final remainder is emitted verbatim. Each chunk is
// trimmed of surrounding whitespace; empty chunks are dropped.
//
// Concatenating the returned chunks reconstructs the input up to whitespace
// trimming at chunk edges.
func SplitText(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + maxSize
		if end >= len(text) {
			if chunk := strings.TrimSpace(text[start:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		window := text[start:end]
		threshold := int(float64(maxSize) * breakThreshold)

		if brk := strings.LastIndex(window, "\n\n"); brk > threshold {
			end = start + brk + 2
		} else if brk := strings.LastIndex(window, ". "); brk > threshold {
			end = start + brk + 1
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		start = end
	}

	return chunks
}
