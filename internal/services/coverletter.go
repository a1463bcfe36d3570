package services

import (
	"context"
	"fmt"
	"strings"

	"resumeworks/resume-builder/internal/models"
)

// Supported cover letter tones. Unknown tones fall back to professional.
const (
	ToneProfessional = "professional"
	ToneWarm         = "warm"
	ToneConfident    = "confident"
)

// CoverLetterService drafts cover letters, model first with a deterministic
// template fallback, mirroring SummaryService.
type CoverLetterService interface {
	Draft(ctx context.Context, req models.CoverLetterRequest) (string, string, error)
}

type coverLetterService struct {
	gemini        GeminiService
	exampleIndex  ExampleIndexService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewCoverLetterService(gemini GeminiService, exampleIndex ExampleIndexService, promptBuilder *PromptBuilder, maxRetries int) CoverLetterService {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &coverLetterService{
		gemini:        gemini,
		exampleIndex:  exampleIndex,
		promptBuilder: promptBuilder,
		maxRetries:    maxRetries,
	}
}

// Draft implements CoverLetterService.
func (s *coverLetterService) Draft(ctx context.Context, req models.CoverLetterRequest) (string, string, error) {
	if strings.TrimSpace(req.Input.FullName) == "" {
		return "", "", fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Input.TargetRole) == "" {
		return "", "", fmt.Errorf("%w: target role is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Input.CompanyName) == "" {
		return "", "", fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}

	if s.gemini != nil {
		exampleContext := s.retrieveExamples(ctx, req)
		prompt := s.promptBuilder.BuildCoverLetterPrompt(req, exampleContext)

		draft, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
		if err == nil {
			draft = CleanDraft(draft)
			if len(draft) >= minDraftLength {
				return draft, SourceGemini, nil
			}
		}
	}

	return s.templateLetter(req), SourceTemplate, nil
}

func (s *coverLetterService) retrieveExamples(ctx context.Context, req models.CoverLetterRequest) string {
	if s.exampleIndex == nil {
		return ""
	}

	query := s.promptBuilder.BuildRetrievalQuery(models.KindCoverLetter, req.Input.TargetRole, req.JobDescription)
	embedding, err := s.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return ""
	}

	results, err := s.exampleIndex.SearchSimilar(ctx, embedding, string(models.KindCoverLetter), 3)
	if err != nil {
		return ""
	}

	return FormatExampleContext(results)
}

// templateLetter builds the deterministic fallback letter: greeting, an
// opening shaped by tone, a body paragraph, and a closing with signature.
func (s *coverLetterService) templateLetter(req models.CoverLetterRequest) string {
	input := req.Input
	var paragraphs []string

	if input.DateLine != "" {
		paragraphs = append(paragraphs, input.DateLine)
	}

	greeting := "Dear Hiring Team,"
	if input.HiringManagerName != "" {
		greeting = fmt.Sprintf("Dear %s,", input.HiringManagerName)
	}
	paragraphs = append(paragraphs, greeting)

	paragraphs = append(paragraphs, s.openingParagraph(req))

	if body := s.bodyParagraph(input); body != "" {
		paragraphs = append(paragraphs, body)
	}

	paragraphs = append(paragraphs, fmt.Sprintf(
		"I would welcome the opportunity to discuss how I can contribute to %s. Thank you for your time and consideration.",
		input.CompanyName))

	paragraphs = append(paragraphs, fmt.Sprintf("Sincerely,\n%s", input.FullName))

	return strings.Join(paragraphs, "\n\n")
}

func (s *coverLetterService) openingParagraph(req models.CoverLetterRequest) string {
	input := req.Input

	experience := ""
	if input.YearsExperience > 0 {
		experience = fmt.Sprintf(" With %d+ years of relevant experience, I am confident I can contribute from day one.", input.YearsExperience)
	}

	switch strings.ToLower(req.Tone) {
	case ToneWarm:
		return fmt.Sprintf(
			"I was delighted to see the %s opening at %s, and I would love to bring my experience to your team.%s",
			input.TargetRole, input.CompanyName, experience)
	case ToneConfident:
		return fmt.Sprintf(
			"I am the %s that %s is looking for.%s",
			input.TargetRole, input.CompanyName, experience)
	default:
		return fmt.Sprintf(
			"I am writing to apply for the %s position at %s.%s",
			input.TargetRole, input.CompanyName, experience)
	}
}

func (s *coverLetterService) bodyParagraph(input models.CoverLetterInput) string {
	var parts []string

	if len(input.KeySkills) > 0 {
		parts = append(parts, fmt.Sprintf("My background includes %s.", joinNatural(topN(input.KeySkills, 5))))
	}
	if len(input.KeyAchievements) > 0 {
		achievement := strings.TrimRight(strings.TrimSpace(input.KeyAchievements[0]), ".")
		parts = append(parts, fmt.Sprintf("Most recently, %s.", lowerFirst(achievement)))
	}
	if strings.TrimSpace(input.Motivation) != "" {
		parts = append(parts, strings.TrimSpace(input.Motivation))
	}

	return strings.Join(parts, " ")
}

// lowerFirst lowercases the first rune unless the text starts with what looks
// like an acronym or proper noun followed by another capital.
func lowerFirst(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	if len(runes) > 1 && runes[1] >= 'A' && runes[1] <= 'Z' {
		return text
	}
	return strings.ToLower(string(runes[0])) + string(runes[1:])
}
