package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkTextShortInput(t *testing.T) {
	chunker := NewDraftChunker()

	chunks := chunker.ChunkText("A short draft.", 1000, 100)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "A short draft." {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewDraftChunker()

	if chunks := chunker.ChunkText("", 1000, 100); chunks != nil {
		t.Errorf("got %v, want nil", chunks)
	}
	if chunks := chunker.ChunkText("\n\n  \n\n", 1000, 100); chunks != nil {
		t.Errorf("whitespace input: got %v, want nil", chunks)
	}
}

func TestChunkTextSplitsParagraphs(t *testing.T) {
	chunker := NewDraftChunker()

	para := strings.Repeat("word ", 50) // ~250 chars
	text := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)

	chunks := chunker.ChunkText(text, 300, 0)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}

	for i, chunk := range chunks {
		if utf8.RuneCountInString(chunk) > 300 {
			t.Errorf("chunk %d has %d runes, max is 300", i, utf8.RuneCountInString(chunk))
		}
	}
}

func TestChunkTextBreaksLongParagraphOnSentences(t *testing.T) {
	chunker := NewDraftChunker()

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("This sentence pads out a very long single paragraph. ")
	}

	chunks := chunker.ChunkText(sb.String(), 200, 0)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
}

func TestChunkTextOverlap(t *testing.T) {
	chunker := NewDraftChunker()

	text := strings.TrimSpace(strings.Repeat("alpha beta gamma delta. ", 30))
	chunks := chunker.ChunkText(text, 200, 50)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}

	// Each later chunk starts with the tail of its predecessor.
	tail := lastRunes(chunks[0], 50)
	if !strings.HasPrefix(chunks[1], tail) {
		t.Errorf("chunk 1 does not start with the 50-rune tail of chunk 0:\ntail: %q\nchunk: %q", tail, chunks[1])
	}
}

func TestLastRunes(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"hello", 3, "llo"},
		{"hi", 10, "hi"},
		{"hello", 0, ""},
	}

	for _, tt := range tests {
		if got := lastRunes(tt.text, tt.n); got != tt.want {
			t.Errorf("lastRunes(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
		}
	}
}
