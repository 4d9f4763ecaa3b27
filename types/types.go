package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FilePDF FileType = "PDF"
	FileCSV FileType = "CSV"
)

var ErrUnsupportedFormat = errors.New("unsupported file format, only PDF and CSV are supported")

// FileTypeFromKey derives the content type from the file-extension-like
// suffix of an object key. Anything but .pdf/.csv is unsupported.
func FileTypeFromKey(key string) (FileType, error) {
	lower := strings.ToLower(key)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return FilePDF, nil
	case strings.HasSuffix(lower, ".csv"):
		return FileCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, key)
	}
}

type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
	SizeXLarge SizeCategory = "xlarge"
)

// MaxStoredContent caps the stored copy of a chunk's text. The text
// handed to the embedder is the untruncated chunk.
const MaxStoredContent = 2000

// SourceDocument identifies one ingested file. Created once per file,
// never updated.
type SourceDocument struct {
	ID        uuid.UUID
	SourceKey string
	FileType  FileType
	FileSize  int64
}

// VectorRecord is a text chunk plus its embedding and the parent
// document's sizing metadata. Immutable once written.
type VectorRecord struct {
	DocumentID   uuid.UUID
	ChunkID      string
	Content      string
	Embedding    []float32
	SourceKey    string
	FileType     FileType
	FileSize     int64
	SizeCategory SizeCategory
	ChunkSize    int
	ChunkIndex   int
	TotalChunks  int
	CreatedAt    time.Time
}

// ScoredCandidate pairs a record with its score against one query.
// It lives only for the duration of that query's evaluation.
type ScoredCandidate struct {
	Record VectorRecord
	Score  float64
}
