package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationStatus string

const (
	StatusQueued     GenerationStatus = "queued"
	StatusProcessing GenerationStatus = "processing"
	StatusCompleted  GenerationStatus = "completed"
	StatusFailed     GenerationStatus = "failed"
)

type GenerationKind string

const (
	KindSummary     GenerationKind = "summary"
	KindCoverLetter GenerationKind = "cover_letter"
)

// Generation is an asynchronous drafting job. Payload holds the original
// request as JSON so workers can rebuild the prompt input.
type Generation struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind         GenerationKind   `gorm:"type:text;not null" json:"kind"`
	Status       GenerationStatus `gorm:"not null;default:'queued'" json:"status"`
	Payload      string           `gorm:"type:text;not null" json:"-"`
	ResultText   *string          `gorm:"type:text" json:"result_text,omitempty"`
	ResultSource *string          `gorm:"type:text" json:"result_source,omitempty"`
	ErrorMessage *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Generation) TableName() string {
	return "generations"
}
