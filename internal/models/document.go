package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is a generated DOCX file on disk. Uploaded resumes are never
// persisted; only rendered output gets a record.
type Document struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename  string    `gorm:"type:text" json:"filename"`
	Kind      string    `gorm:"type:text" json:"kind"`
	Template  string    `gorm:"type:text" json:"template"`
	FilePath  string    `gorm:"type:text" json:"file_path"`
	SizeBytes int64     `gorm:"type:bigint" json:"size_bytes"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
