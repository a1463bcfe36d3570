package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resumeworks/resume-builder/internal/repositories"
)

const defaultEventsLimit = 50

type EventsHandler struct {
	eventRepo repositories.UsageEventRepository
}

func NewEventsHandler(eventRepo repositories.UsageEventRepository) *EventsHandler {
	return &EventsHandler{
		eventRepo: eventRepo,
	}
}

// HandleListEvents handles GET /events
func (h *EventsHandler) HandleListEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultEventsLimit)
	if limit <= 0 || limit > 500 {
		limit = defaultEventsLimit
	}

	events, err := h.eventRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list usage events",
		})
	}

	return c.JSON(fiber.Map{
		"events": events,
	})
}
