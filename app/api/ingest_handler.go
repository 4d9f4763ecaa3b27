package api

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"docqa/ingest"
	"docqa/types"
)

type IngestHandler struct {
	service   *ingest.Service
	source    ingest.ObjectSource
	uploadDir string
}

func NewIngestHandler(service *ingest.Service, source ingest.ObjectSource, uploadDir string) *IngestHandler {
	return &IngestHandler{
		service:   service,
		source:    source,
		uploadDir: uploadDir,
	}
}

// HandleIngest processes one object already present under the upload
// directory and reports the per-chunk counts.
func (h *IngestHandler) HandleIngest(c *fiber.Ctx) error {
	var params types.IngestParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}
	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	resp, err := h.service.Ingest(c.Context(), h.source, params.Key)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// HandleUpload saves an uploaded file into the upload directory, where
// the watcher picks it up for ingestion.
func (h *IngestHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest()
	}

	if _, err := types.FileTypeFromKey(file.Filename); err != nil {
		return err
	}

	path := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveFile(file, path); err != nil {
		return err
	}
	log.Printf("[UPLOAD] file saved to: %s", path)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("File %s uploaded", file.Filename),
	})
}
