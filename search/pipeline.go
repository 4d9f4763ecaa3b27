// Package search orchestrates one query: embed the question, scan the
// store, score and select candidates, assemble grounding context and
// ask the language model. The pipeline is stateless across calls.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"docqa/model"
	"docqa/rank"
	"docqa/types"
)

// NoInformationAnswer is returned when no candidate survives
// selection. This is a normal outcome, not an error.
const NoInformationAnswer = "No relevant information found in the documents."

// ErrEmptyQuestion rejects empty or whitespace-only questions before
// any provider is invoked.
var ErrEmptyQuestion = errors.New("no question provided")

// RecordScanner enumerates every stored vector record. Pagination, if
// any, is the store's concern; the pipeline sees one finite sequence.
type RecordScanner interface {
	ScanAll(ctx context.Context) ([]types.VectorRecord, error)
}

// LLM generates an answer from a fully assembled prompt.
type LLM interface {
	Generate(prompt string) (string, error)
}

type Pipeline struct {
	store    RecordScanner
	embedder model.Embedder
	llm      LLM
	limit    int
}

func NewPipeline(store RecordScanner, embedder model.Embedder, llm LLM, limit int) *Pipeline {
	if limit <= 0 {
		limit = 10
	}
	return &Pipeline{
		store:    store,
		embedder: embedder,
		llm:      llm,
		limit:    limit,
	}
}

// Answer runs the full retrieval pipeline for one question.
func (p *Pipeline) Answer(ctx context.Context, question string) (*types.QueryResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	queryVec, err := p.embedder.Embed(question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	records, err := p.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	log.Printf("[SEARCH] total chunks in store: %d", len(records))

	candidates := make([]types.ScoredCandidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, types.ScoredCandidate{
			Record: record,
			Score:  rank.Score(queryVec, record),
		})
	}

	selected := rank.Select(candidates, p.limit)
	if len(selected) == 0 {
		return &types.QueryResponse{
			Answer:  NoInformationAnswer,
			Sources: []string{},
		}, nil
	}

	grounding, sources := buildContext(selected)
	log.Printf("[SEARCH] selected %d chunks from %d documents", len(selected), len(sources))

	answer, err := p.llm.Generate(buildPrompt(grounding, question))
	if err != nil {
		// A generate failure is folded into the answer body rather
		// than failing the request; the caller still gets the sources
		// that grounded the attempt.
		answer = fmt.Sprintf("Error: %s", err.Error())
	}

	return &types.QueryResponse{
		Answer:        answer,
		Sources:       sources,
		ContextChunks: len(selected),
		DocumentsUsed: len(sources),
	}, nil
}

// buildContext concatenates the selected chunks in score order,
// inserting a document marker whenever the source changes, and returns
// the distinct source keys in order of first appearance.
func buildContext(selected []types.ScoredCandidate) (string, []string) {
	var parts []string
	var sources []string
	seen := make(map[string]bool)
	current := ""

	for _, c := range selected {
		source := c.Record.SourceKey
		if source != current {
			parts = append(parts, fmt.Sprintf("\n--- Document: %s ---", source))
			current = source
		}
		parts = append(parts, c.Record.Content)

		if !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}

	return strings.Join(parts, "\n"), sources
}

func buildPrompt(grounding, question string) string {
	return fmt.Sprintf(`You are an expert assistant that analyzes information from multiple documents.

IMPORTANT INSTRUCTIONS:
1. Analyze ALL the documents provided in the context
2. Combine the relevant information from ALL available sources
3. If different documents carry complementary information, integrate it
4. If documents contradict each other, say so explicitly
5. Answer in the same language as the question

CONTEXT FROM MULTIPLE DOCUMENTS:
%s

QUESTION: %s

Answer completely, integrating the information from ALL relevant documents. When you use information from a specific document, mention it briefly.`, grounding, question)
}
