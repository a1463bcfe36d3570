package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeworks/resume-builder/internal/models"
	"resumeworks/resume-builder/internal/repositories"
)

type ResultHandler struct {
	genRepo repositories.GenerationRepository
}

func NewResultHandler(genRepo repositories.GenerationRepository) *ResultHandler {
	return &ResultHandler{
		genRepo: genRepo,
	}
}

// HandleGetResult handles GET /generations/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	genID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid generation ID format",
		})
	}

	gen, err := h.genRepo.FindByID(genID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Generation not found",
		})
	}

	response := models.GenerationResultResponse{
		ID:     gen.ID.String(),
		Status: string(gen.Status),
	}

	if gen.Status == models.StatusCompleted && gen.ResultText != nil {
		source := ""
		if gen.ResultSource != nil {
			source = *gen.ResultSource
		}
		response.Result = &models.GenerationData{
			Text:   *gen.ResultText,
			Source: source,
		}
	}

	if gen.Status == models.StatusFailed && gen.ErrorMessage != nil {
		response.ErrorMessage = gen.ErrorMessage
	}

	return c.JSON(response)
}
