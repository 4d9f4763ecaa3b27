package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

type QueryParams struct {
	Question string `json:"question" validate:"required"`
}

func (params *QueryParams) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

type IngestParams struct {
	Key string `json:"key" validate:"required"`
}

func (params *IngestParams) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

// QueryResponse is the query endpoint's success payload.
type QueryResponse struct {
	Answer        string   `json:"answer"`
	Sources       []string `json:"sources"`
	ContextChunks int      `json:"context_chunks"`
	DocumentsUsed int      `json:"documents_used"`
}

// IngestResponse reports per-document ingestion results, including the
// sizing metadata the chunker settled on.
type IngestResponse struct {
	Message         string       `json:"message"`
	DocumentID      string       `json:"document_id"`
	ChunksProcessed int          `json:"chunks_processed"`
	ChunksFailed    int          `json:"chunks_failed"`
	FileType        FileType     `json:"file_type"`
	FileSize        int64        `json:"file_size"`
	SizeCategory    SizeCategory `json:"size_category"`
	ChunkSize       int          `json:"chunk_size"`
	ChunkOverlap    int          `json:"chunk_overlap"`
	MaxChunks       int          `json:"max_chunks"`
	ProcessingTime  float64      `json:"processing_time"`
}
