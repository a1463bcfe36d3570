package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeworks/resume-builder/internal/models"
	"resumeworks/resume-builder/internal/repositories"
	"resumeworks/resume-builder/internal/services"
)

type GenerateHandler struct {
	genRepo repositories.GenerationRepository
	worker  services.Worker
}

func NewGenerateHandler(genRepo repositories.GenerationRepository, worker services.Worker) *GenerateHandler {
	return &GenerateHandler{
		genRepo: genRepo,
		worker:  worker,
	}
}

// HandleGenerateSummary handles POST /generate/summary
func (h *GenerateHandler) HandleGenerateSummary(c *fiber.Ctx) error {
	var req models.SummaryRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Profile.FullName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "profile.full_name is required",
		})
	}

	if strings.TrimSpace(req.Profile.Title) == "" && strings.TrimSpace(req.TargetTitle) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "profile.title or target_title is required",
		})
	}

	return h.enqueue(c, models.KindSummary, req)
}

// HandleGenerateCoverLetter handles POST /generate/cover-letter
func (h *GenerateHandler) HandleGenerateCoverLetter(c *fiber.Ctx) error {
	var req models.CoverLetterRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Input.FullName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "input.full_name is required",
		})
	}

	if strings.TrimSpace(req.Input.TargetRole) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "input.target_role is required",
		})
	}

	if strings.TrimSpace(req.Input.CompanyName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "input.company_name is required",
		})
	}

	if req.Tone != "" {
		switch strings.ToLower(req.Tone) {
		case services.ToneProfessional, services.ToneWarm, services.ToneConfident:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "tone must be one of: professional, warm, confident",
			})
		}
	}

	return h.enqueue(c, models.KindCoverLetter, req)
}

func (h *GenerateHandler) enqueue(c *fiber.Ctx, kind models.GenerationKind, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to encode request",
		})
	}

	gen := &models.Generation{
		ID:        uuid.New(),
		Kind:      kind,
		Status:    models.StatusQueued,
		Payload:   string(data),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.genRepo.Create(gen); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create generation job",
		})
	}

	h.worker.EnqueueJob(gen.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.GenerateResponse{
		ID:     gen.ID.String(),
		Status: string(models.StatusQueued),
	})
}
