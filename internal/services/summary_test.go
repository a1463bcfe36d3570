package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resumeworks/resume-builder/internal/models"
)

// stubGemini returns canned text or a canned error.
type stubGemini struct {
	text      string
	err       error
	calls     int
	embedding []float32
	embedErr  error
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return s.embedding, s.embedErr
}

func summaryRequest() models.SummaryRequest {
	return models.SummaryRequest{
		Profile: models.CandidateProfile{
			FullName:        "Jordan Rivera",
			Title:           "Backend Engineer",
			YearsExperience: 6,
			CoreSkills:      []string{"Go", "PostgreSQL", "Kubernetes"},
			Industries:      []string{"fintech"},
			Achievements:    []string{"Cut API latency by 40%"},
		},
		JobDescription: "Looking for a backend engineer with Go and Kafka experience",
	}
}

func TestSummaryDraftUsesModel(t *testing.T) {
	gemini := &stubGemini{text: "Backend engineer with six years of experience shipping Go services in fintech. Deep expertise in PostgreSQL and Kubernetes."}
	svc := NewSummaryService(gemini, nil, NewPromptBuilder(), 3)

	text, source, err := svc.Draft(context.Background(), summaryRequest())
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}

	if source != SourceGemini {
		t.Errorf("source = %q, want %q", source, SourceGemini)
	}
	if !strings.Contains(text, "Backend engineer") {
		t.Errorf("unexpected draft: %q", text)
	}
	if gemini.calls != 1 {
		t.Errorf("gemini calls = %d, want 1", gemini.calls)
	}
}

func TestSummaryDraftFallsBackOnModelError(t *testing.T) {
	gemini := &stubGemini{err: errors.New("quota exceeded")}
	svc := NewSummaryService(gemini, nil, NewPromptBuilder(), 3)

	text, source, err := svc.Draft(context.Background(), summaryRequest())
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}

	if source != SourceTemplate {
		t.Errorf("source = %q, want %q", source, SourceTemplate)
	}
	if !strings.Contains(text, "Backend Engineer with 6+ years of experience") {
		t.Errorf("template draft missing headline: %q", text)
	}
	if !strings.Contains(text, "Skilled in Go, PostgreSQL, and Kubernetes.") {
		t.Errorf("template draft missing skills: %q", text)
	}
	if !strings.Contains(text, "Cut API latency by 40%.") {
		t.Errorf("template draft missing achievement: %q", text)
	}
}

func TestSummaryDraftFallsBackOnShortOutput(t *testing.T) {
	gemini := &stubGemini{text: "ok"}
	svc := NewSummaryService(gemini, nil, NewPromptBuilder(), 3)

	_, source, err := svc.Draft(context.Background(), summaryRequest())
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if source != SourceTemplate {
		t.Errorf("source = %q, want template fallback for degenerate output", source)
	}
}

func TestSummaryDraftTemplateOnlyWithoutModel(t *testing.T) {
	svc := NewSummaryService(nil, nil, NewPromptBuilder(), 3)

	text, source, err := svc.Draft(context.Background(), summaryRequest())
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if source != SourceTemplate {
		t.Errorf("source = %q, want %q", source, SourceTemplate)
	}
	if text == "" {
		t.Error("template draft is empty")
	}
}

func TestSummaryDraftMentionsJobKeywords(t *testing.T) {
	svc := NewSummaryService(nil, nil, NewPromptBuilder(), 3)

	// Kafka appears in the job description but not in the profile skills, so
	// the template should mention it as familiar territory.
	text, _, err := svc.Draft(context.Background(), summaryRequest())
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if !strings.Contains(strings.ToLower(text), "kafka") {
		t.Errorf("template draft missing job keyword hint: %q", text)
	}
}

func TestSummaryDraftValidation(t *testing.T) {
	svc := NewSummaryService(nil, nil, NewPromptBuilder(), 3)

	req := summaryRequest()
	req.Profile.FullName = "  "
	if _, _, err := svc.Draft(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing name: error = %v, want ErrInvalidInput", err)
	}

	req = summaryRequest()
	req.Profile.Title = ""
	req.TargetTitle = ""
	if _, _, err := svc.Draft(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing title: error = %v, want ErrInvalidInput", err)
	}
}

func TestCleanDraft(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips fences", "```\ndraft text here\n```", "draft text here"},
		{"strips fence language tag", "```text\ndraft text here\n```", "draft text here"},
		{"strips quotes", `"quoted draft"`, "quoted draft"},
		{"collapses blank runs", "one\n\n\n\ntwo", "one\n\ntwo"},
		{"keeps paragraph break", "one\n\ntwo", "one\n\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDraft(tt.input); got != tt.want {
				t.Errorf("CleanDraft(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinNatural(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{nil, ""},
		{[]string{"Go"}, "Go"},
		{[]string{"Go", "SQL"}, "Go and SQL"},
		{[]string{"Go", "SQL", "Kafka"}, "Go, SQL, and Kafka"},
	}

	for _, tt := range tests {
		if got := joinNatural(tt.items); got != tt.want {
			t.Errorf("joinNatural(%v) = %q, want %q", tt.items, got, tt.want)
		}
	}
}
