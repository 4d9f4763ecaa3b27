package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/types"
)

type fakeStore struct {
	records []types.VectorRecord
	err     error
}

func (s *fakeStore) ScanAll(ctx context.Context) ([]types.VectorRecord, error) {
	return s.records, s.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (e *fakeEmbedder) Embed(text string) ([]float32, error) {
	return e.vector, e.err
}

type fakeLLM struct {
	answer  string
	err     error
	prompts []string
}

func (l *fakeLLM) Generate(prompt string) (string, error) {
	l.prompts = append(l.prompts, prompt)
	return l.answer, l.err
}

func record(source string, chunkID string, embedding []float32) types.VectorRecord {
	return types.VectorRecord{
		DocumentID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(source)),
		ChunkID:    chunkID,
		SourceKey:  source,
		Content:    strings.Repeat(source+" ", 20),
		Embedding:  embedding,
	}
}

func TestAnswerRejectsEmptyQuestion(t *testing.T) {
	p := NewPipeline(&fakeStore{}, &fakeEmbedder{}, &fakeLLM{}, 10)

	_, err := p.Answer(context.Background(), "   \t ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAnswerEmptyStoreSkipsLLM(t *testing.T) {
	llm := &fakeLLM{answer: "should never be used"}
	p := NewPipeline(&fakeStore{}, &fakeEmbedder{vector: []float32{1, 0}}, llm, 10)

	resp, err := p.Answer(context.Background(), "anything?")
	require.NoError(t, err)

	assert.Equal(t, NoInformationAnswer, resp.Answer)
	assert.Empty(t, resp.Sources)
	assert.Zero(t, resp.ContextChunks)
	assert.Zero(t, resp.DocumentsUsed)
	assert.Empty(t, llm.prompts, "language model must not be invoked")
}

func TestAnswerHappyPath(t *testing.T) {
	store := &fakeStore{records: []types.VectorRecord{
		record("a.pdf", "chunk_0", []float32{1, 0}),
		record("a.pdf", "chunk_1", []float32{0.9, 0.1}),
		record("b.csv", "chunk_0", []float32{0.5, 0.5}),
	}}
	llm := &fakeLLM{answer: "grounded answer"}
	p := NewPipeline(store, &fakeEmbedder{vector: []float32{1, 0}}, llm, 10)

	resp, err := p.Answer(context.Background(), "what is in the files?")
	require.NoError(t, err)

	assert.Equal(t, "grounded answer", resp.Answer)
	assert.ElementsMatch(t, []string{"a.pdf", "b.csv"}, resp.Sources)
	assert.Equal(t, 3, resp.ContextChunks)
	assert.Equal(t, 2, resp.DocumentsUsed)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "--- Document: a.pdf ---")
	assert.Contains(t, llm.prompts[0], "--- Document: b.csv ---")
	assert.Contains(t, llm.prompts[0], "what is in the files?")
}

func TestAnswerFoldsLLMErrorIntoAnswer(t *testing.T) {
	store := &fakeStore{records: []types.VectorRecord{
		record("a.pdf", "chunk_0", []float32{1, 0}),
	}}
	llm := &fakeLLM{err: errors.New("model unavailable")}
	p := NewPipeline(store, &fakeEmbedder{vector: []float32{1, 0}}, llm, 10)

	resp, err := p.Answer(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "Error: model unavailable", resp.Answer)
	assert.Equal(t, []string{"a.pdf"}, resp.Sources)
}

func TestAnswerPropagatesEmbeddingError(t *testing.T) {
	p := NewPipeline(&fakeStore{}, &fakeEmbedder{err: errors.New("boom")}, &fakeLLM{}, 10)

	_, err := p.Answer(context.Background(), "question")
	assert.ErrorContains(t, err, "failed to embed query")
}

func TestAnswerPropagatesStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("scan failed")}
	llm := &fakeLLM{}
	p := NewPipeline(store, &fakeEmbedder{vector: []float32{1, 0}}, llm, 10)

	_, err := p.Answer(context.Background(), "question")
	assert.ErrorContains(t, err, "failed to scan records")
	assert.Empty(t, llm.prompts)
}
