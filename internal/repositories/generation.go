package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumeworks/resume-builder/internal/models"
)

type GenerationRepository interface {
	Create(gen *models.Generation) error
	FindByID(id uuid.UUID) (*models.Generation, error)
	UpdateStatus(id uuid.UUID, status models.GenerationStatus) error
	UpdateResult(id uuid.UUID, text, source string) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Generation, error)
}

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(gen *models.Generation) error {
	if err := r.db.Create(gen).Error; err != nil {
		return fmt.Errorf("failed to create generation: %w", err)
	}
	return nil
}

func (r *generationRepository) FindByID(id uuid.UUID) (*models.Generation, error) {
	var gen models.Generation
	if err := r.db.Where("id = ?", id).First(&gen).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("generation not found")
		}
		return nil, fmt.Errorf("failed to find generation: %w", err)
	}
	return &gen, nil
}

func (r *generationRepository) UpdateStatus(id uuid.UUID, status models.GenerationStatus) error {
	result := r.db.Model(&models.Generation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("generation not found")
	}

	return nil
}

func (r *generationRepository) UpdateResult(id uuid.UUID, text, source string) error {
	result := r.db.Model(&models.Generation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusCompleted,
			"result_text":   text,
			"result_source": source,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("generation not found")
	}

	return nil
}

func (r *generationRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Generation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("generation not found")
	}

	return nil
}

func (r *generationRepository) FindPendingJobs(limit int) ([]models.Generation, error) {
	var gens []models.Generation
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&gens).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return gens, nil
}
