package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidInput is returned when a scoring input is empty or blank. Callers
// surface it as a validation error; it is never retried.
var ErrInvalidInput = errors.New("invalid input")

// ScoreConfig controls keyword extraction. Zero values fall back to defaults,
// so the zero ScoreConfig is ready to use.
type ScoreConfig struct {
	// MinKeywordLength is the minimum rune count for a token to count as a
	// keyword. Defaults to 3.
	MinKeywordLength int
	// StopWords overrides the default stop-word set when non-nil.
	StopWords map[string]struct{}
	// MaxKeywords caps the job-description keyword set, keeping the most
	// frequent tokens. Zero means unbounded.
	MaxKeywords int
}

// ScoreResult is the outcome of one scoring call. Matched and Missing
// partition the job-description keyword set and are always sorted.
type ScoreResult struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Notes   []string `json:"notes"`
}

type AtsScorerService interface {
	Score(resumeText, jobDescription string, cfg ScoreConfig) (*ScoreResult, error)
}

type atsScorerService struct{}

// NewAtsScorerService returns a stateless scorer. Score is a pure function of
// its inputs, so a single instance is safe for concurrent use.
func NewAtsScorerService() AtsScorerService {
	return &atsScorerService{}
}

const (
	maxNotes           = 5
	maxKeywordsPerNote = 10
	longLineThreshold  = 120
	minResumeWords     = 250
	maxResumeWords     = 950
)

var sectionHeadings = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"experience", regexp.MustCompile(`\bexperience\b|\bemployment\b|\bwork history\b`)},
	{"education", regexp.MustCompile(`\beducation\b|\bqualifications\b`)},
	{"skills", regexp.MustCompile(`\bskills\b|\bcompetencies\b`)},
}

// Score implements AtsScorerService.
func (s *atsScorerService) Score(resumeText, jobDescription string, cfg ScoreConfig) (*ScoreResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume text is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is empty", ErrInvalidInput)
	}

	minLength := cfg.MinKeywordLength
	if minLength <= 0 {
		minLength = 3
	}
	stopWords := cfg.StopWords
	if stopWords == nil {
		stopWords = DefaultStopWords
	}

	jobCounts := capKeywords(keywordCounts(jobDescription, minLength, stopWords), cfg.MaxKeywords)
	resumeCounts := keywordCounts(resumeText, minLength, stopWords)

	if len(jobCounts) == 0 {
		return &ScoreResult{
			Score:   0,
			Matched: []string{},
			Missing: []string{},
			Notes:   []string{"Job description contains no significant keywords; cannot compute a match."},
		}, nil
	}

	matched := make(map[string]struct{})
	missing := make(map[string]struct{})
	for kw := range jobCounts {
		if _, ok := resumeCounts[kw]; ok {
			matched[kw] = struct{}{}
		} else {
			missing[kw] = struct{}{}
		}
	}

	result := &ScoreResult{
		Score:   int(math.Round(100 * float64(len(matched)) / float64(len(jobCounts)))),
		Matched: sortedKeywords(matched),
		Missing: sortedKeywords(missing),
	}
	result.Notes = buildNotes(resumeText, result.Missing)

	return result, nil
}

// buildNotes produces at most maxNotes deterministic improvement suggestions:
// a missing-keyword hint followed by structural checks on the resume text.
func buildNotes(resumeText string, missing []string) []string {
	var notes []string

	if len(missing) > 0 {
		listed := missing
		extra := 0
		if len(listed) > maxKeywordsPerNote {
			extra = len(listed) - maxKeywordsPerNote
			listed = listed[:maxKeywordsPerNote]
		}
		note := fmt.Sprintf("Consider working these keywords in naturally: %s", strings.Join(listed, ", "))
		if extra > 0 {
			note += fmt.Sprintf(" (+%d more)", extra)
		}
		notes = append(notes, note+".")
	}

	lower := strings.ToLower(resumeText)
	var missingSections []string
	for _, section := range sectionHeadings {
		if !section.pattern.MatchString(lower) {
			missingSections = append(missingSections, section.name)
		}
	}
	if len(missingSections) > 0 {
		notes = append(notes, fmt.Sprintf("Missing common section headings: %s.", strings.Join(missingSections, ", ")))
	}

	if longLines := countLongLines(resumeText, longLineThreshold); longLines > 0 {
		notes = append(notes, fmt.Sprintf("Found %d very long lines (>%d chars). Consider wrapping text.", longLines, longLineThreshold))
	}

	if symbolDensity(resumeText) >= 0.06 {
		notes = append(notes, "High symbol density detected. Avoid heavy tables and graphics in ATS-facing resumes.")
	}

	if words := len(tokenize(resumeText)); words < minResumeWords || words > maxResumeWords {
		notes = append(notes, fmt.Sprintf("Resume word count is %d. Typical ranges are ~%d-%d depending on seniority.", words, minResumeWords, maxResumeWords))
	}

	if len(notes) == 0 {
		notes = append(notes, "Looks reasonably ATS-friendly. Improve by adding missing key terms naturally.")
	}

	if len(notes) > maxNotes {
		notes = notes[:maxNotes]
	}

	return notes
}

func countLongLines(text string, threshold int) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if len([]rune(line)) > threshold {
			count++
		}
	}
	return count
}

func symbolDensity(text string) float64 {
	if text == "" {
		return 0
	}

	symbols := 0
	total := 0
	for _, r := range text {
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			symbols++
		}
	}

	return float64(symbols) / float64(total)
}
