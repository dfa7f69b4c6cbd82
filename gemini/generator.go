// Package gemini provides Google Gemini implementations of siterag.Generator
// and siterag.Embedder.
package gemini

import (
	"context"

	"github.com/tanakrit-d/siterag"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used for title synthesis and answers.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements siterag.Generator at compile time.
var _ siterag.Generator = (*Generator)(nil)

// Generator implements siterag.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Invoke sends the prompt to the model and returns its text response.
func (g *Generator) Invoke(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", siterag.Errorf(siterag.EINVALID, "prompt required")
	}

	temp := float32(0.1)
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{Temperature: &temp},
	)
	if err != nil {
		return "", siterag.Errorf(siterag.EUNAVAILABLE, "gemini generation failed: %v", err)
	}
	if result == nil {
		return "", siterag.Errorf(siterag.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}
