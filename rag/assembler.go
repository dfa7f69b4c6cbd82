// Package rag assembles grounded answers. It embeds a question, retrieves
// the nearest stored chunks, builds a prompt from them plus recent chat
// history, invokes generation once and normalizes the disclaimer on the
// result.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tanakrit-d/siterag"
)

// DefaultTopK is the number of nearest chunks retrieved per question.
const DefaultTopK = 3

// historyWindow bounds how many prior turns are included in the prompt.
const historyWindow = 4

// Disclaimer is the canonical medical disclaimer. Every answer ends with
// exactly one copy, regardless of how many the model emitted.
const Disclaimer = "This information is a preliminary summary drawn from " +
	"question-and-answer threads on a health forum and cannot replace advice, " +
	"diagnosis, or treatment from a qualified medical professional. If you " +
	"have any health concerns, please consult a doctor directly."

// NoInformationAnswer is returned when retrieval finds nothing relevant.
const NoInformationAnswer = "Sorry, I could not find information directly " +
	"relevant to your question in the knowledge base at this time."

// insufficientAnswer replaces a generation result that was empty after
// disclaimer stripping, when retrieved context did exist.
const insufficientAnswer = "The available information may not be enough to " +
	"give a clear answer to this question."

// genericFailureAnswer is returned when a backend call fails. The query path
// degrades rather than propagating the failure to the caller.
const genericFailureAnswer = "Something went wrong while processing your " +
	"question. Please try again."

const systemPrompt = `You are the helpful assistant of a health information service that summarizes medical question-and-answer forum threads.
You receive a question from a user along with reference content from threads that doctors have answered.

Important instructions:
1. Answer in the same language as the user's question.
2. Consider the previous conversation, if any, to understand the context of the current question.
3. Use only the supplied reference content to answer the current question. Never use outside knowledge.
4. Act as an informational assistant, not a doctor: summarize the doctors' answers accurately and clearly.
5. If several relevant answers exist, synthesize them. If they conflict, say that opinions in the reference material differ.
6. Be precise, concise and factual.
7. If the reference content is not relevant or not sufficient to answer confidently, say so.
8. Never give personal medical advice, a diagnosis, or a specific treatment recommendation.
9. Always end your answer with this exact text: "` + Disclaimer + `"
10. Never mention the words "reference content" or "conversation history" in your answer. Respond as if the knowledge is your own.`

// Assembler answers questions from the chunk store. K defaults to
// DefaultTopK when zero.
type Assembler struct {
	Store     siterag.ChunkStore
	Embedder  siterag.Embedder
	Generator siterag.Generator
	Logger    *slog.Logger
	K         int
}

// Answer embeds the question, retrieves the nearest chunks and generates a
// grounded answer ending in exactly one disclaimer. Backend failures are
// absorbed into a generic disclaimer-bearing answer with empty sources; an
// error is returned only for an empty question.
func (a *Assembler) Answer(ctx context.Context, query string, history []siterag.ChatTurn) (*siterag.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, siterag.Errorf(siterag.EINVALID, "question must not be empty")
	}

	k := a.K
	if k <= 0 {
		k = DefaultTopK
	}

	embedding, err := a.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		a.Logger.Error("query embedding failed", "error", err)
		return failureResult(), nil
	}

	chunks, err := a.Store.QueryChunks(ctx, embedding, k)
	if err != nil {
		a.Logger.Error("chunk retrieval failed", "error", err)
		return failureResult(), nil
	}
	if len(chunks) == 0 {
		// Nothing to ground an answer in; generation is not invoked.
		return &siterag.RetrievalResult{
			Answer:  NoInformationAnswer + "\n\n" + Disclaimer,
			Sources: []siterag.Source{},
		}, nil
	}

	raw, err := a.Generator.Invoke(ctx, buildPrompt(query, history, chunks))
	if err != nil {
		a.Logger.Error("answer generation failed", "error", err)
		return failureResult(), nil
	}

	answer := strings.TrimSpace(strings.ReplaceAll(raw, Disclaimer, ""))
	if answer == "" {
		answer = insufficientAnswer
	}

	sources := make([]siterag.Source, 0, len(chunks))
	for _, chunk := range chunks {
		sources = append(sources, siterag.Source{
			Title:   chunk.Title,
			URL:     chunk.URL,
			Summary: chunk.Summary,
		})
	}

	return &siterag.RetrievalResult{
		Answer:  answer + "\n\n" + Disclaimer,
		Sources: sources,
	}, nil
}

func failureResult() *siterag.RetrievalResult {
	return &siterag.RetrievalResult{
		Answer:  genericFailureAnswer + "\n\n" + Disclaimer,
		Sources: []siterag.Source{},
	}
}

// buildPrompt assembles the generation prompt: system instruction, the last
// few role-labelled turns, the retrieved chunks as "title: content" lines,
// and the current question.
func buildPrompt(query string, history []siterag.ChatTurn, chunks []*siterag.ProcessedChunk) string {
	var b strings.Builder
	b.WriteString("System: ")
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	if len(history) > 0 {
		if len(history) > historyWindow {
			history = history[len(history)-historyWindow:]
		}
		b.WriteString("Previous conversation:\n")
		for _, turn := range history {
			label := "User"
			if turn.Role == siterag.RoleAssistant {
				label = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", label, turn.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("Reference content from forum threads answered by doctors:\n")
	for _, chunk := range chunks {
		title := chunk.Title
		if title == "" {
			title = "Reference"
		}
		fmt.Fprintf(&b, "- %s: %s\n", title, chunk.Content)
	}

	b.WriteString("\nCurrent user question:\n")
	b.WriteString(query)

	return b.String()
}
