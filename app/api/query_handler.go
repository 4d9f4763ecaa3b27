package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docqa/search"
	"docqa/types"
)

type QueryHandler struct {
	pipeline *search.Pipeline
}

func NewQueryHandler(pipeline *search.Pipeline) *QueryHandler {
	return &QueryHandler{
		pipeline: pipeline,
	}
}

// HandleQuery answers a question grounded in the stored documents. The
// question arrives in the JSON body or as a query parameter.
func (h *QueryHandler) HandleQuery(c *fiber.Ctx) error {
	var params types.QueryParams
	if len(c.Body()) > 0 {
		if c.BodyParser(&params) != nil {
			return ErrBadRequest()
		}
	}
	if params.Question == "" {
		params.Question = c.Query("question")
	}

	resp, err := h.pipeline.Answer(c.Context(), params.Question)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuestion) {
			return NewError(fiber.StatusBadRequest, "No question provided")
		}
		return NewError(fiber.StatusInternalServerError, "Error processing query")
	}

	return c.JSON(resp)
}
