package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventScoreComputed        = "ats_score_computed"
	EventSummaryGenerated     = "summary_generated"
	EventCoverLetterGenerated = "cover_letter_generated"
	EventResumeExported       = "resume_exported"
)

// UsageEvent is a lightweight analytics record written by handlers.
type UsageEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Event     string    `gorm:"type:text;not null" json:"event"`
	Template  string    `gorm:"type:text" json:"template,omitempty"`
	Meta      string    `gorm:"type:text" json:"meta,omitempty"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (UsageEvent) TableName() string {
	return "usage_events"
}
