package services

import (
	"strings"
	"unicode/utf8"
)

// DraftChunker splits long draft text into overlapping chunks small enough to
// embed. Paragraphs are kept whole when they fit; oversized paragraphs are
// broken on sentence boundaries.
type DraftChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type draftChunker struct{}

func NewDraftChunker() DraftChunker {
	return &draftChunker{}
}

// ChunkText implements DraftChunker.
func (c *draftChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	units := splitUnits(text, maxChunkSize)
	if len(units) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		if overlap > 0 {
			tail := lastRunes(chunks[len(chunks)-1], overlap)
			if tail != "" {
				current.WriteString(tail)
				current.WriteString(" ")
			}
		}
	}

	for _, unit := range units {
		if current.Len() > 0 && current.Len()+len(unit)+1 > maxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(unit)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitUnits yields non-empty paragraphs, breaking any paragraph longer than
// maxSize into sentences.
func splitUnits(text string, maxSize int) []string {
	var units []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxSize {
			units = append(units, para)
			continue
		}
		for _, sentence := range strings.FieldsFunc(para, func(r rune) bool {
			return r == '.' || r == '!' || r == '?'
		}) {
			sentence = strings.TrimSpace(sentence)
			if sentence != "" {
				units = append(units, sentence)
			}
		}
	}
	return units
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
