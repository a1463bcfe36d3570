package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"resumeworks/resume-builder/internal/models"
	"resumeworks/resume-builder/internal/repositories"
)

// GenerationService processes queued drafting jobs. It owns the full job
// lifecycle: status transitions, drafting, result persistence and indexing
// completed drafts as future retrieval examples.
type GenerationService interface {
	ProcessGeneration(ctx context.Context, genID uuid.UUID) error
}

type generationService struct {
	genRepo      repositories.GenerationRepository
	eventRepo    repositories.UsageEventRepository
	summary      SummaryService
	coverLetter  CoverLetterService
	gemini       GeminiService
	exampleIndex ExampleIndexService
	chunker      DraftChunker
}

func NewGenerationService(
	genRepo repositories.GenerationRepository,
	eventRepo repositories.UsageEventRepository,
	summary SummaryService,
	coverLetter CoverLetterService,
	gemini GeminiService,
	exampleIndex ExampleIndexService,
	chunker DraftChunker,
) GenerationService {
	return &generationService{
		genRepo:      genRepo,
		eventRepo:    eventRepo,
		summary:      summary,
		coverLetter:  coverLetter,
		gemini:       gemini,
		exampleIndex: exampleIndex,
		chunker:      chunker,
	}
}

// ProcessGeneration implements GenerationService.
func (s *generationService) ProcessGeneration(ctx context.Context, genID uuid.UUID) error {
	gen, err := s.genRepo.FindByID(genID)
	if err != nil {
		return fmt.Errorf("failed to load generation: %w", err)
	}

	// Jobs picked up twice (enqueue + poller) are skipped on the second pass.
	if gen.Status != models.StatusQueued {
		return nil
	}

	if err := s.genRepo.UpdateStatus(genID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to mark processing: %w", err)
	}

	text, source, err := s.draft(ctx, gen)
	if err != nil {
		if updateErr := s.genRepo.UpdateError(genID, err.Error()); updateErr != nil {
			log.Printf("❌ Failed to record error for generation %s: %v\n", genID, updateErr)
		}
		return fmt.Errorf("failed to draft %s: %w", gen.Kind, err)
	}

	if err := s.genRepo.UpdateResult(genID, text, source); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	s.recordEvent(gen.Kind, source)
	s.indexDraft(ctx, gen, text)

	return nil
}

func (s *generationService) draft(ctx context.Context, gen *models.Generation) (string, string, error) {
	switch gen.Kind {
	case models.KindSummary:
		var req models.SummaryRequest
		if err := json.Unmarshal([]byte(gen.Payload), &req); err != nil {
			return "", "", fmt.Errorf("invalid summary payload: %w", err)
		}
		return s.summary.Draft(ctx, req)
	case models.KindCoverLetter:
		var req models.CoverLetterRequest
		if err := json.Unmarshal([]byte(gen.Payload), &req); err != nil {
			return "", "", fmt.Errorf("invalid cover letter payload: %w", err)
		}
		return s.coverLetter.Draft(ctx, req)
	default:
		return "", "", fmt.Errorf("unknown generation kind: %s", gen.Kind)
	}
}

func (s *generationService) recordEvent(kind models.GenerationKind, source string) {
	name := models.EventSummaryGenerated
	if kind == models.KindCoverLetter {
		name = models.EventCoverLetterGenerated
	}

	event := &models.UsageEvent{
		Event: name,
		Meta:  fmt.Sprintf(`{"source":%q}`, source),
	}
	if err := s.eventRepo.Record(event); err != nil {
		log.Printf("⚠️  Failed to record usage event %s: %v\n", name, err)
	}
}

// indexDraft embeds a completed draft and stores it as a retrieval example.
// Long drafts are chunked before embedding. Indexing is best effort.
func (s *generationService) indexDraft(ctx context.Context, gen *models.Generation, text string) {
	if s.exampleIndex == nil || s.gemini == nil {
		return
	}

	for _, chunk := range s.chunker.ChunkText(text, 1000, 100) {
		embedding, err := s.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("⚠️  Failed to embed draft %s: %v\n", gen.ID, err)
			return
		}

		if err := s.exampleIndex.UpsertExample(ctx, gen.ID.String(), string(gen.Kind), chunk, embedding); err != nil {
			log.Printf("⚠️  Failed to index draft %s: %v\n", gen.ID, err)
			return
		}
	}
}
