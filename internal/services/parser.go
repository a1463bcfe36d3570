package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ResumeParserService extracts plain text from uploaded resume files. The
// format is chosen by file extension: .pdf, .docx and .txt are supported.
type ResumeParserService interface {
	ExtractText(filePath string) (string, error)
	SupportedExtension(filename string) bool
}

type resumeParserService struct{}

func NewResumeParserService() ResumeParserService {
	return &resumeParserService{}
}

// SupportedExtension implements ResumeParserService.
func (p *resumeParserService) SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// ExtractText implements ResumeParserService.
func (p *resumeParserService) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return p.extractPDF(filePath)
	case ".docx":
		return p.extractDocx(filePath)
	case ".txt":
		return p.extractPlain(filePath)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filePath))
	}
}

func (p *resumeParserService) extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

func (p *resumeParserService) extractDocx(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()

	// Paragraph boundaries become newlines, all other markup is dropped.
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "&amp;", "&")
	content = strings.ReplaceAll(content, "&lt;", "<")
	content = strings.ReplaceAll(content, "&gt;", ">")

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}

	return content, nil
}

func (p *resumeParserService) extractPlain(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("file is empty")
	}

	return text, nil
}

// CleanText trims each line and drops blank ones so extracted resume text is
// stable across formats.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
