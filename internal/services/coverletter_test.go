package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resumeworks/resume-builder/internal/models"
)

func coverLetterRequest(tone string) models.CoverLetterRequest {
	return models.CoverLetterRequest{
		Input: models.CoverLetterInput{
			FullName:        "Jordan Rivera",
			TargetRole:      "Platform Engineer",
			CompanyName:     "Acme Cloud",
			YearsExperience: 6,
			KeySkills:       []string{"Go", "Terraform", "Kubernetes"},
			KeyAchievements: []string{"Led a migration of 200 services to Kubernetes"},
		},
		JobDescription: "Platform engineer to own our Kubernetes infrastructure",
		Tone:           tone,
	}
}

func TestCoverLetterDraftUsesModel(t *testing.T) {
	gemini := &stubGemini{text: "Dear Hiring Team,\n\nI am excited to apply for the Platform Engineer role at Acme Cloud. My experience maps directly onto your needs.\n\nSincerely,\nJordan Rivera"}
	svc := NewCoverLetterService(gemini, nil, NewPromptBuilder(), 3)

	text, source, err := svc.Draft(context.Background(), coverLetterRequest(""))
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if source != SourceGemini {
		t.Errorf("source = %q, want %q", source, SourceGemini)
	}
	if !strings.Contains(text, "Platform Engineer") {
		t.Errorf("unexpected draft: %q", text)
	}
}

func TestCoverLetterTemplateFallback(t *testing.T) {
	gemini := &stubGemini{err: errors.New("unavailable")}
	svc := NewCoverLetterService(gemini, nil, NewPromptBuilder(), 3)

	text, source, err := svc.Draft(context.Background(), coverLetterRequest(""))
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if source != SourceTemplate {
		t.Errorf("source = %q, want %q", source, SourceTemplate)
	}

	for _, want := range []string{
		"Dear Hiring Team,",
		"Platform Engineer position at Acme Cloud",
		"6+ years of relevant experience",
		"Go, Terraform, and Kubernetes",
		"Sincerely,\nJordan Rivera",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("template letter missing %q:\n%s", want, text)
		}
	}
}

func TestCoverLetterTones(t *testing.T) {
	svc := NewCoverLetterService(nil, nil, NewPromptBuilder(), 3)

	tests := []struct {
		tone string
		want string
	}{
		{ToneProfessional, "I am writing to apply for the Platform Engineer position"},
		{ToneWarm, "I was delighted to see the Platform Engineer opening"},
		{ToneConfident, "I am the Platform Engineer that Acme Cloud is looking for."},
		{"", "I am writing to apply for the Platform Engineer position"},
		{"shouty", "I am writing to apply for the Platform Engineer position"},
	}

	for _, tt := range tests {
		t.Run("tone_"+tt.tone, func(t *testing.T) {
			text, _, err := svc.Draft(context.Background(), coverLetterRequest(tt.tone))
			if err != nil {
				t.Fatalf("Draft() error = %v", err)
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("tone %q letter missing %q:\n%s", tt.tone, tt.want, text)
			}
		})
	}
}

func TestCoverLetterHiringManagerGreeting(t *testing.T) {
	svc := NewCoverLetterService(nil, nil, NewPromptBuilder(), 3)

	req := coverLetterRequest("")
	req.Input.HiringManagerName = "Sam Chen"

	text, _, err := svc.Draft(context.Background(), req)
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if !strings.Contains(text, "Dear Sam Chen,") {
		t.Errorf("letter missing personalized greeting:\n%s", text)
	}
}

func TestCoverLetterValidation(t *testing.T) {
	svc := NewCoverLetterService(nil, nil, NewPromptBuilder(), 3)

	tests := []struct {
		name   string
		mutate func(*models.CoverLetterRequest)
	}{
		{"missing name", func(r *models.CoverLetterRequest) { r.Input.FullName = "" }},
		{"missing role", func(r *models.CoverLetterRequest) { r.Input.TargetRole = " " }},
		{"missing company", func(r *models.CoverLetterRequest) { r.Input.CompanyName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := coverLetterRequest("")
			tt.mutate(&req)
			if _, _, err := svc.Draft(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Led a migration", "led a migration"},
		{"API redesign shipped", "API redesign shipped"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := lowerFirst(tt.input); got != tt.want {
			t.Errorf("lowerFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
