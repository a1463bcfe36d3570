package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeworks/resume-builder/internal/models"
	"resumeworks/resume-builder/internal/repositories"
	"resumeworks/resume-builder/internal/services"
)

type ExportHandler struct {
	renderer       services.ResumeRendererService
	storageService services.StorageService
	docRepo        repositories.DocumentRepository
	eventRepo      repositories.UsageEventRepository
}

func NewExportHandler(
	renderer services.ResumeRendererService,
	storageService services.StorageService,
	docRepo repositories.DocumentRepository,
	eventRepo repositories.UsageEventRepository,
) *ExportHandler {
	return &ExportHandler{
		renderer:       renderer,
		storageService: storageService,
		docRepo:        docRepo,
		eventRepo:      eventRepo,
	}
}

// HandleExport handles POST /resumes/export
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	var req models.ExportRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	filename, content, err := h.renderer.Render(req.Resume, req.Template)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render resume",
		})
	}

	// Collisions get a unique suffix so exports never overwrite each other.
	storedName := fmt.Sprintf("%s_%s.docx", filename[:len(filename)-len(".docx")], uuid.New().String()[:8])
	filePath, err := h.storageService.SaveGenerated(storedName, content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save rendered resume",
		})
	}

	template := req.Template
	if template == "" {
		template = services.TemplateModern
	}

	doc := &models.Document{
		ID:        uuid.New(),
		Filename:  filename,
		Kind:      "resume",
		Template:  template,
		FilePath:  filePath,
		SizeBytes: int64(len(content)),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.docRepo.Create(doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save document record",
		})
	}

	h.recordEvent(template)

	return c.Status(fiber.StatusCreated).JSON(models.ExportResponse{
		ID:       doc.ID.String(),
		Filename: doc.Filename,
		Template: doc.Template,
		Download: fmt.Sprintf("/api/v1/documents/%s/download", doc.ID),
	})
}

// HandleDownload handles GET /documents/:id/download
func (h *ExportHandler) HandleDownload(c *fiber.Ctx) error {
	idParam := c.Params("id")
	docID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	return c.Download(doc.FilePath, doc.Filename)
}

func (h *ExportHandler) recordEvent(template string) {
	event := &models.UsageEvent{
		Event:    models.EventResumeExported,
		Template: template,
	}
	if err := h.eventRepo.Record(event); err != nil {
		log.Printf("⚠️  Failed to record usage event: %v\n", err)
	}
}
