package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"resumeworks/resume-builder/internal/models"
)

type UsageEventRepository interface {
	Record(event *models.UsageEvent) error
	FindRecent(limit int) ([]models.UsageEvent, error)
}

type usageEventRepository struct {
	db *gorm.DB
}

func NewUsageEventRepository(db *gorm.DB) UsageEventRepository {
	return &usageEventRepository{db: db}
}

// Record implements UsageEventRepository.
func (r *usageEventRepository) Record(event *models.UsageEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to record usage event: %w", err)
	}

	return nil
}

// FindRecent implements UsageEventRepository.
func (r *usageEventRepository) FindRecent(limit int) ([]models.UsageEvent, error) {
	var events []models.UsageEvent
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list usage events: %w", err)
	}

	return events, nil
}
