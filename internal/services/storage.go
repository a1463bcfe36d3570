package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService owns the two local directories the API writes to: a scratch
// area for uploaded resumes and a durable one for generated documents.
type StorageService interface {
	EnsureDirs() error
	SaveUpload(file *multipart.FileHeader) (string, string, error)
	SaveGenerated(filename string, data []byte) (string, error)
	GeneratedPath(filename string) string
	DeleteUpload(filePath string) error
}

type storageService struct {
	uploadPath    string
	generatedPath string
}

func NewStorageService(uploadPath, generatedPath string) StorageService {
	return &storageService{
		uploadPath:    uploadPath,
		generatedPath: generatedPath,
	}
}

func (s *storageService) EnsureDirs() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.MkdirAll(s.generatedPath, 0755); err != nil {
		return fmt.Errorf("failed to create generated directory: %w", err)
	}

	return nil
}

// SaveUpload stores an uploaded resume under a unique name and returns the
// stored filename and its full path.
func (s *storageService) SaveUpload(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".pdf", ".docx", ".txt":
	default:
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

// SaveGenerated writes a rendered document and returns its full path.
func (s *storageService) SaveGenerated(filename string, data []byte) (string, error) {
	filePath := filepath.Join(s.generatedPath, filename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write generated file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) GeneratedPath(filename string) string {
	return filepath.Join(s.generatedPath, filename)
}

func (s *storageService) DeleteUpload(filePath string) error {
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SafeFilename slugs a candidate name into a filesystem-safe filename stem.
// Anything that is not a letter or digit becomes an underscore, runs collapse,
// and the stem falls back to "resume" when nothing survives.
func SafeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	stem := strings.Trim(b.String(), "_")
	if stem == "" {
		return "resume"
	}

	return stem
}
