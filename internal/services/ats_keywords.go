package services

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultStopWords are tokens excluded from keyword matching: common English
// words plus resume boilerplate that carries no signal for ATS scoring.
var DefaultStopWords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "from": {}, "that": {},
	"this": {}, "have": {}, "has": {}, "had": {}, "are": {}, "was": {},
	"were": {}, "been": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "as": {}, "by": {}, "or": {}, "an": {}, "a": {}, "it": {},
	"is": {}, "be": {}, "will": {}, "can": {}, "may": {}, "your": {},
	"you": {}, "we": {}, "our": {}, "their": {}, "they": {}, "them": {},
	"i": {}, "my": {}, "me": {}, "us": {},
	"role": {}, "job": {}, "work": {}, "team": {}, "ability": {},
	"skills": {}, "experience": {}, "years": {}, "including": {},
}

// tokenize lower-cases text and splits it into word tokens. Runs of letters
// and digits form a token; '+', '#', '.' and '-' are kept inside tokens so
// terms like "c++", "c#", "node.js" and "power-bi" survive. Trailing dots and
// hyphens are trimmed, and a token must contain at least one letter.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := strings.TrimRight(word.String(), ".-")
		word.Reset()
		if w == "" {
			return
		}
		for _, r := range w {
			if unicode.IsLetter(r) {
				tokens = append(tokens, w)
				return
			}
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '-' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// keywordCounts tokenizes text and counts occurrences of every token that
// passes the minimum-length and stop-word filters.
func keywordCounts(text string, minLength int, stopWords map[string]struct{}) map[string]int {
	counts := make(map[string]int)
	for _, token := range tokenize(text) {
		if len([]rune(token)) < minLength {
			continue
		}
		if _, stopped := stopWords[token]; stopped {
			continue
		}
		counts[token]++
	}
	return counts
}

// capKeywords keeps the maxKeywords most frequent keywords, ties broken
// alphabetically so results are deterministic. A cap of zero means unbounded.
func capKeywords(counts map[string]int, maxKeywords int) map[string]int {
	if maxKeywords <= 0 || len(counts) <= maxKeywords {
		return counts
	}

	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	capped := make(map[string]int, maxKeywords)
	for _, kw := range keywords[:maxKeywords] {
		capped[kw] = counts[kw]
	}
	return capped
}

func sortedKeywords(set map[string]struct{}) []string {
	keywords := make([]string, 0, len(set))
	for kw := range set {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}
