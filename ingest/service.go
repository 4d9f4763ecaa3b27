// Package ingest turns a raw stored object into embedded vector
// records: content-type dispatch, text extraction, adaptive chunking,
// per-chunk embedding with retry, and store writes. Chunk failures are
// counted, never fatal to the document.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"docqa/chunk"
	"docqa/model"
	"docqa/store"
	"docqa/types"
)

const defaultMaxRetries = 3

type Service struct {
	store    store.RecordStorer
	embedder model.Embedder

	maxRetries  int
	backoffBase time.Duration
}

func NewService(storer store.RecordStorer, embedder model.Embedder) *Service {
	return &Service{
		store:       storer,
		embedder:    embedder,
		maxRetries:  defaultMaxRetries,
		backoffBase: time.Second,
	}
}

// Ingest processes one object end to end and reports per-chunk
// success/failure counts along with the sizing metadata used.
func (s *Service) Ingest(ctx context.Context, source ObjectSource, key string) (*types.IngestResponse, error) {
	start := time.Now()

	fileType, err := types.FileTypeFromKey(key)
	if err != nil {
		return nil, err
	}

	fileSize, err := source.Size(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	data, err := source.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}

	var text string
	switch fileType {
	case types.FilePDF:
		text, err = ExtractPDFText(data)
	case types.FileCSV:
		text, err = ExtractCSVText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", key, err)
	}
	log.Printf("[INGEST] %s: %s, %d bytes, %d characters extracted", key, fileType, fileSize, len(text))

	params := chunk.ParamsFor(fileType, fileSize)
	chunks := chunk.Split(text, params.ChunkSize, params.ChunkOverlap, params.MaxChunks)
	log.Printf("[INGEST] %s: %d chunks (size %d, overlap %d, max %d)",
		key, len(chunks), params.ChunkSize, params.ChunkOverlap, params.MaxChunks)

	documentID := uuid.New()
	createdAt := time.Now().UTC()
	processed, failed := 0, 0

	for i, chunkText := range chunks {
		embedding, err := s.embedWithRetry(ctx, chunkText)
		if err != nil {
			failed++
			log.Printf("[INGEST] chunk %d of %s failed: %v", i, key, err)
			continue
		}

		record := types.VectorRecord{
			DocumentID:   documentID,
			ChunkID:      fmt.Sprintf("chunk_%d", i),
			Content:      truncateStored(chunkText),
			Embedding:    embedding,
			SourceKey:    key,
			FileType:     fileType,
			FileSize:     fileSize,
			SizeCategory: params.SizeCategory,
			ChunkSize:    len([]rune(chunkText)),
			ChunkIndex:   i,
			TotalChunks:  len(chunks),
			CreatedAt:    createdAt,
		}

		if err := s.store.Put(ctx, record); err != nil {
			failed++
			log.Printf("[INGEST] storing chunk %d of %s failed: %v", i, key, err)
			continue
		}
		processed++
	}

	return &types.IngestResponse{
		Message:         fmt.Sprintf("Processed %d chunks from %s", processed, key),
		DocumentID:      documentID.String(),
		ChunksProcessed: processed,
		ChunksFailed:    failed,
		FileType:        fileType,
		FileSize:        fileSize,
		SizeCategory:    params.SizeCategory,
		ChunkSize:       params.ChunkSize,
		ChunkOverlap:    params.ChunkOverlap,
		MaxChunks:       params.MaxChunks,
		ProcessingTime:  time.Since(start).Seconds(),
	}, nil
}

// embedWithRetry retries transient embedding failures with exponential
// backoff before giving the chunk up.
func (s *Service) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		embedding, err := s.embedder.Embed(text)
		if err == nil {
			return embedding, nil
		}
		lastErr = err

		if attempt == s.maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.backoffBase << attempt):
		}
	}
	return nil, lastErr
}

func truncateStored(text string) string {
	runes := []rune(text)
	if len(runes) <= types.MaxStoredContent {
		return text
	}
	return string(runes[:types.MaxStoredContent])
}
