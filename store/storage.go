package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"docqa/types"
)

// RecordStorer is the vector record store the core depends on:
// append-only puts and a full enumeration. Scoring and filtering are
// deliberately not the store's business — the balanced-selection
// policy needs to see every document.
type RecordStorer interface {
	Put(ctx context.Context, record types.VectorRecord) error
	ScanAll(ctx context.Context) ([]types.VectorRecord, error)
}

type PostgresStore struct {
	pool         *pgxpool.Pool
	embeddingDim int
	scanPageSize int
}

func NewPostgresStore(ctx context.Context, connStr string, embeddingDim int) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool:         pool,
		embeddingDim: embeddingDim,
		scanPageSize: 500,
	}, nil
}

func (p *PostgresStore) Init(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE EXTENSION IF NOT EXISTS vector;

	CREATE TABLE IF NOT EXISTS vector_records (
		id BIGSERIAL PRIMARY KEY,
		document_id UUID NOT NULL,
		chunk_id TEXT NOT NULL,
		content TEXT NOT NULL,
		embedding vector(%d) NOT NULL,
		source_key TEXT NOT NULL,
		file_type TEXT CHECK (file_type IN ('PDF','CSV')),
		file_size BIGINT NOT NULL,
		size_category TEXT NOT NULL,
		chunk_size INT NOT NULL,
		chunk_index INT NOT NULL,
		total_chunks INT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_records_document_id ON vector_records(document_id);
	`, p.embeddingDim)
	_, err := p.pool.Exec(ctx, query)
	return err
}

func (p *PostgresStore) Put(ctx context.Context, record types.VectorRecord) error {
	query := `
	INSERT INTO vector_records
		(document_id, chunk_id, content, embedding, source_key, file_type,
		 file_size, size_category, chunk_size, chunk_index, total_chunks, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := p.pool.Exec(ctx, query,
		record.DocumentID,
		record.ChunkID,
		record.Content,
		pgvector.NewVector(record.Embedding),
		record.SourceKey,
		string(record.FileType),
		record.FileSize,
		string(record.SizeCategory),
		record.ChunkSize,
		record.ChunkIndex,
		record.TotalChunks,
		record.CreatedAt,
	)
	return err
}

// ScanAll enumerates every stored record, paging by the serial key so
// one huge result set never sits in a single query. The caller gets
// the whole table as one slice.
func (p *PostgresStore) ScanAll(ctx context.Context) ([]types.VectorRecord, error) {
	query := `
	SELECT id, document_id, chunk_id, content, embedding, source_key,
	       file_type, file_size, size_category, chunk_size, chunk_index,
	       total_chunks, created_at
	FROM vector_records
	WHERE id > $1
	ORDER BY id
	LIMIT $2
	`

	var records []types.VectorRecord
	var lastID int64

	for {
		rows, err := p.pool.Query(ctx, query, lastID, p.scanPageSize)
		if err != nil {
			return nil, err
		}

		pageCount := 0
		for rows.Next() {
			var record types.VectorRecord
			var embedding pgvector.Vector
			if err := rows.Scan(
				&lastID,
				&record.DocumentID,
				&record.ChunkID,
				&record.Content,
				&embedding,
				&record.SourceKey,
				&record.FileType,
				&record.FileSize,
				&record.SizeCategory,
				&record.ChunkSize,
				&record.ChunkIndex,
				&record.TotalChunks,
				&record.CreatedAt,
			); err != nil {
				rows.Close()
				return nil, err
			}
			record.Embedding = embedding.Slice()
			records = append(records, record)
			pageCount++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}

		if pageCount < p.scanPageSize {
			break
		}
	}

	return records, nil
}

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		log.Println("Postgres connection pool is closed")
	}
	return nil
}
