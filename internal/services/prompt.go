package services

import (
	"fmt"
	"strings"

	"resumeworks/resume-builder/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSummaryPrompt creates the prompt for a professional resume summary.
func (pb *PromptBuilder) BuildSummaryPrompt(req models.SummaryRequest, exampleContext string) string {
	profile := req.Profile
	title := req.TargetTitle
	if title == "" {
		title = profile.Title
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`You are an expert resume writer crafting a professional summary for a candidate.

CANDIDATE:
- Name: %s
- Current/target title: %s
- Years of experience: %d
- Core skills: %s
- Notable achievements: %s
`,
		profile.FullName,
		title,
		profile.YearsExperience,
		strings.Join(profile.CoreSkills, ", "),
		strings.Join(profile.Achievements, "; ")))

	if len(profile.Industries) > 0 {
		sb.WriteString(fmt.Sprintf("- Industries: %s\n", strings.Join(profile.Industries, ", ")))
	}
	if len(profile.Tools) > 0 {
		sb.WriteString(fmt.Sprintf("- Tools: %s\n", strings.Join(profile.Tools, ", ")))
	}

	if strings.TrimSpace(req.JobDescription) != "" {
		sb.WriteString(fmt.Sprintf(`
TARGET JOB DESCRIPTION:
%s
`, req.JobDescription))
	}

	if exampleContext != "" {
		sb.WriteString(fmt.Sprintf(`
EXAMPLES OF WELL-RECEIVED SUMMARIES:
%s
`, exampleContext))
	}

	sb.WriteString(`
Write a 3-4 sentence professional summary in the first person, without using "I".
Lead with the candidate's strongest qualification, weave in the most relevant
skills, and keep it under 90 words. Return ONLY the summary text, no headings,
no quotes, no markdown.`)

	return sb.String()
}

// BuildCoverLetterPrompt creates the prompt for a full cover letter.
func (pb *PromptBuilder) BuildCoverLetterPrompt(req models.CoverLetterRequest, exampleContext string) string {
	input := req.Input
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`You are an expert career coach writing a cover letter on behalf of a candidate.

CANDIDATE:
- Name: %s
- Years of experience: %d
- Key skills: %s
- Notable achievements: %s

APPLYING FOR:
- Role: %s
- Company: %s
`,
		input.FullName,
		input.YearsExperience,
		strings.Join(input.KeySkills, ", "),
		strings.Join(input.KeyAchievements, "; "),
		input.TargetRole,
		input.CompanyName))

	if strings.TrimSpace(input.Motivation) != "" {
		sb.WriteString(fmt.Sprintf("\nCANDIDATE'S MOTIVATION:\n%s\n", input.Motivation))
	}

	if strings.TrimSpace(req.JobDescription) != "" {
		sb.WriteString(fmt.Sprintf(`
JOB DESCRIPTION:
%s
`, req.JobDescription))
	}

	sb.WriteString(fmt.Sprintf("\nTONE: %s\n", tone))

	if exampleContext != "" {
		sb.WriteString(fmt.Sprintf(`
EXAMPLES OF WELL-RECEIVED LETTERS:
%s
`, exampleContext))
	}

	sb.WriteString(`
Write a complete cover letter of 3 short paragraphs: why the candidate fits the
role, one concrete achievement, and a closing with a call to action. Address it
to the hiring team, sign off with the candidate's name, and keep it under 250
words. Return ONLY the letter text, no markdown.`)

	return sb.String()
}

// BuildRetrievalQuery creates the query text embedded for example retrieval.
func (pb *PromptBuilder) BuildRetrievalQuery(kind models.GenerationKind, title, jobDescription string) string {
	switch kind {
	case models.KindSummary:
		return fmt.Sprintf("Professional resume summary for a %s", title)
	case models.KindCoverLetter:
		return fmt.Sprintf("Cover letter for a %s role. %s", title, jobDescription)
	default:
		return jobDescription
	}
}

// FormatExampleContext flattens retrieved examples into a prompt section.
func FormatExampleContext(results []ExampleResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Example %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
