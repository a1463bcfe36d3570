package services

import (
	"context"
	"fmt"
	"strings"

	"resumeworks/resume-builder/internal/models"
)

const (
	// SourceGemini marks drafts produced by the language model, SourceTemplate
	// marks the deterministic fallback.
	SourceGemini   = "gemini"
	SourceTemplate = "template"

	// minDraftLength guards against degenerate model output; anything shorter
	// falls back to the template.
	minDraftLength = 40
)

// SummaryService drafts professional resume summaries. The language model is
// attempted first when available; the deterministic template always succeeds.
type SummaryService interface {
	Draft(ctx context.Context, req models.SummaryRequest) (string, string, error)
}

type summaryService struct {
	gemini        GeminiService
	exampleIndex  ExampleIndexService
	promptBuilder *PromptBuilder
	maxRetries    int
}

// NewSummaryService wires the summary generator. gemini and exampleIndex may
// be nil; the service degrades to template-only drafting.
func NewSummaryService(gemini GeminiService, exampleIndex ExampleIndexService, promptBuilder *PromptBuilder, maxRetries int) SummaryService {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &summaryService{
		gemini:        gemini,
		exampleIndex:  exampleIndex,
		promptBuilder: promptBuilder,
		maxRetries:    maxRetries,
	}
}

// Draft implements SummaryService.
func (s *summaryService) Draft(ctx context.Context, req models.SummaryRequest) (string, string, error) {
	if strings.TrimSpace(req.Profile.FullName) == "" {
		return "", "", fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Profile.Title) == "" && strings.TrimSpace(req.TargetTitle) == "" {
		return "", "", fmt.Errorf("%w: a title is required", ErrInvalidInput)
	}

	if s.gemini != nil {
		exampleContext := s.retrieveExamples(ctx, req)
		prompt := s.promptBuilder.BuildSummaryPrompt(req, exampleContext)

		draft, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
		if err == nil {
			draft = CleanDraft(draft)
			if len(draft) >= minDraftLength {
				return draft, SourceGemini, nil
			}
		}
	}

	return s.templateSummary(req), SourceTemplate, nil
}

func (s *summaryService) retrieveExamples(ctx context.Context, req models.SummaryRequest) string {
	if s.exampleIndex == nil {
		return ""
	}

	title := req.TargetTitle
	if title == "" {
		title = req.Profile.Title
	}

	query := s.promptBuilder.BuildRetrievalQuery(models.KindSummary, title, req.JobDescription)
	embedding, err := s.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return ""
	}

	results, err := s.exampleIndex.SearchSimilar(ctx, embedding, string(models.KindSummary), 3)
	if err != nil {
		return ""
	}

	return FormatExampleContext(results)
}

// templateSummary builds the deterministic fallback summary. Top keywords of
// the target job description that the profile does not already claim are
// mentioned as familiar territory.
func (s *summaryService) templateSummary(req models.SummaryRequest) string {
	profile := req.Profile
	title := req.TargetTitle
	if title == "" {
		title = profile.Title
	}

	var sb strings.Builder

	if profile.YearsExperience > 0 {
		sb.WriteString(fmt.Sprintf("%s with %d+ years of experience", title, profile.YearsExperience))
	} else {
		sb.WriteString(title)
	}
	if len(profile.Industries) > 0 {
		sb.WriteString(fmt.Sprintf(" in %s", joinNatural(profile.Industries)))
	}
	sb.WriteString(".")

	if len(profile.CoreSkills) > 0 {
		sb.WriteString(fmt.Sprintf(" Skilled in %s.", joinNatural(topN(profile.CoreSkills, 5))))
	}

	if len(profile.Achievements) > 0 {
		achievement := strings.TrimRight(strings.TrimSpace(profile.Achievements[0]), ".")
		sb.WriteString(fmt.Sprintf(" %s.", achievement))
	}

	if hints := jobKeywordHints(req.JobDescription, profile); len(hints) > 0 {
		sb.WriteString(fmt.Sprintf(" Familiar with %s.", joinNatural(hints)))
	}

	sb.WriteString(" Focused on delivering measurable results and continuous improvement.")

	return sb.String()
}

// jobKeywordHints returns up to three frequent job-description keywords the
// profile does not already mention.
func jobKeywordHints(jobDescription string, profile models.CandidateProfile) []string {
	if strings.TrimSpace(jobDescription) == "" {
		return nil
	}

	claimed := make(map[string]struct{})
	claimedSources := append(append([]string{profile.Title}, profile.CoreSkills...), profile.Tools...)
	for _, source := range claimedSources {
		for _, token := range tokenize(source) {
			claimed[token] = struct{}{}
		}
	}

	counts := keywordCounts(jobDescription, 3, DefaultStopWords)
	for kw := range counts {
		if _, ok := claimed[kw]; ok {
			delete(counts, kw)
		}
	}

	capped := capKeywords(counts, 3)
	hints := make([]string, 0, len(capped))
	for kw := range capped {
		hints = append(hints, kw)
	}
	return sortedKeywords(toSet(hints))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func topN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// joinNatural joins items with commas and a final "and".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// CleanDraft normalizes model output: markdown fences and surrounding quotes
// are stripped, trailing whitespace removed, and runs of blank lines collapsed
// so paragraph breaks survive.
func CleanDraft(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		// The opening fence may carry a language tag; drop the whole line.
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(text, "```")
	text = strings.Trim(text, "\"")
	text = strings.TrimSpace(text)

	var lines []string
	blank := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			lines = append(lines, "")
			continue
		}
		blank = 0
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
