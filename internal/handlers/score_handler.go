package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumeworks/resume-builder/internal/models"
	"resumeworks/resume-builder/internal/repositories"
	"resumeworks/resume-builder/internal/services"
)

type ScoreHandler struct {
	scorer         services.AtsScorerService
	parser         services.ResumeParserService
	storageService services.StorageService
	eventRepo      repositories.UsageEventRepository
	maxFileSize    int64
	defaults       services.ScoreConfig
}

func NewScoreHandler(
	scorer services.AtsScorerService,
	parser services.ResumeParserService,
	storageService services.StorageService,
	eventRepo repositories.UsageEventRepository,
	maxFileSize int64,
	defaults services.ScoreConfig,
) *ScoreHandler {
	return &ScoreHandler{
		scorer:         scorer,
		parser:         parser,
		storageService: storageService,
		eventRepo:      eventRepo,
		maxFileSize:    maxFileSize,
		defaults:       defaults,
	}
}

// HandleScore handles POST /ats/score
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	return h.score(c, req.ResumeText, req.JobDescription, req.MinKeywordLength, req.MaxKeywords)
}

// HandleScoreFile handles POST /ats/score-file. The resume arrives as a
// multipart file ("resume"), the job description as a form field.
func (h *ScoreHandler) HandleScoreFile(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	if !h.parser.SupportedExtension(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file type. Upload a PDF, DOCX or TXT resume.",
		})
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	_, filePath, err := h.storageService.SaveUpload(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}
	// Uploaded resumes are scratch files; they never outlive the request.
	defer func() {
		if err := h.storageService.DeleteUpload(filePath); err != nil {
			log.Printf("⚠️  Failed to clean up upload %s: %v\n", filePath, err)
		}
	}()

	resumeText, err := h.parser.ExtractText(filePath)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract resume text: %v", err),
		})
	}

	return h.score(c, services.CleanText(resumeText), jobDescription, 0, 0)
}

func (h *ScoreHandler) score(c *fiber.Ctx, resumeText, jobDescription string, minLength, maxKeywords int) error {
	cfg := h.defaults
	if minLength > 0 {
		cfg.MinKeywordLength = minLength
	}
	if maxKeywords > 0 {
		cfg.MaxKeywords = maxKeywords
	}

	result, err := h.scorer.Score(resumeText, jobDescription, cfg)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute score",
		})
	}

	h.recordEvent(result.Score)

	return c.JSON(result)
}

func (h *ScoreHandler) recordEvent(score int) {
	event := &models.UsageEvent{
		Event: models.EventScoreComputed,
		Meta:  fmt.Sprintf(`{"score":%d}`, score),
	}
	if err := h.eventRepo.Record(event); err != nil {
		log.Printf("⚠️  Failed to record usage event: %v\n", err)
	}
}
