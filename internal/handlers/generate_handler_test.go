package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeworks/resume-builder/internal/models"
)

type stubGenerationRepo struct {
	gens     map[uuid.UUID]*models.Generation
	notFound bool
}

func newStubGenerationRepo() *stubGenerationRepo {
	return &stubGenerationRepo{gens: make(map[uuid.UUID]*models.Generation)}
}

func (r *stubGenerationRepo) Create(gen *models.Generation) error {
	r.gens[gen.ID] = gen
	return nil
}

func (r *stubGenerationRepo) FindByID(id uuid.UUID) (*models.Generation, error) {
	gen, ok := r.gens[id]
	if !ok || r.notFound {
		return nil, stubError("generation not found")
	}
	return gen, nil
}

func (r *stubGenerationRepo) UpdateStatus(id uuid.UUID, status models.GenerationStatus) error {
	r.gens[id].Status = status
	return nil
}

func (r *stubGenerationRepo) UpdateResult(id uuid.UUID, text, source string) error {
	gen := r.gens[id]
	gen.Status = models.StatusCompleted
	gen.ResultText = &text
	gen.ResultSource = &source
	return nil
}

func (r *stubGenerationRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	gen := r.gens[id]
	gen.Status = models.StatusFailed
	gen.ErrorMessage = &errorMsg
	return nil
}

func (r *stubGenerationRepo) FindPendingJobs(limit int) ([]models.Generation, error) {
	return nil, nil
}

type stubError string

func (e stubError) Error() string { return string(e) }

type stubWorker struct {
	enqueued []uuid.UUID
}

func (w *stubWorker) Start(ctx context.Context)  {}
func (w *stubWorker) Stop()                      {}
func (w *stubWorker) EnqueueJob(genID uuid.UUID) { w.enqueued = append(w.enqueued, genID) }

func newGenerateApp(genRepo *stubGenerationRepo, worker *stubWorker) *fiber.App {
	generateHandler := NewGenerateHandler(genRepo, worker)
	resultHandler := NewResultHandler(genRepo)

	app := fiber.New()
	app.Post("/generate/summary", generateHandler.HandleGenerateSummary)
	app.Post("/generate/cover-letter", generateHandler.HandleGenerateCoverLetter)
	app.Get("/generations/:id", resultHandler.HandleGetResult)
	return app
}

func TestHandleGenerateSummary(t *testing.T) {
	genRepo := newStubGenerationRepo()
	worker := &stubWorker{}
	app := newGenerateApp(genRepo, worker)

	body, _ := json.Marshal(models.SummaryRequest{
		Profile: models.CandidateProfile{
			FullName: "Jordan Rivera",
			Title:    "Backend Engineer",
		},
	})

	req := httptest.NewRequest("POST", "/generate/summary", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	var response models.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response.Status != string(models.StatusQueued) {
		t.Errorf("status = %q, want queued", response.Status)
	}

	genID, err := uuid.Parse(response.ID)
	if err != nil {
		t.Fatalf("response ID is not a UUID: %v", err)
	}
	if _, ok := genRepo.gens[genID]; !ok {
		t.Error("generation was not persisted")
	}
	if len(worker.enqueued) != 1 || worker.enqueued[0] != genID {
		t.Errorf("enqueued = %v, want [%s]", worker.enqueued, genID)
	}
}

func TestHandleGenerateSummaryValidation(t *testing.T) {
	app := newGenerateApp(newStubGenerationRepo(), &stubWorker{})

	body, _ := json.Marshal(models.SummaryRequest{
		Profile: models.CandidateProfile{FullName: "Jordan Rivera"},
	})

	req := httptest.NewRequest("POST", "/generate/summary", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing title", resp.StatusCode)
	}
}

func TestHandleGenerateCoverLetterBadTone(t *testing.T) {
	app := newGenerateApp(newStubGenerationRepo(), &stubWorker{})

	body, _ := json.Marshal(models.CoverLetterRequest{
		Input: models.CoverLetterInput{
			FullName:    "Jordan Rivera",
			TargetRole:  "Platform Engineer",
			CompanyName: "Acme Cloud",
		},
		Tone: "aggressive",
	})

	req := httptest.NewRequest("POST", "/generate/cover-letter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown tone", resp.StatusCode)
	}
}

func TestHandleGetResult(t *testing.T) {
	genRepo := newStubGenerationRepo()
	app := newGenerateApp(genRepo, &stubWorker{})

	text := "A finished draft."
	source := "template"
	gen := &models.Generation{
		ID:           uuid.New(),
		Kind:         models.KindSummary,
		Status:       models.StatusCompleted,
		ResultText:   &text,
		ResultSource: &source,
	}
	genRepo.gens[gen.ID] = gen

	req := httptest.NewRequest("GET", "/generations/"+gen.ID.String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var response models.GenerationResultResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response.Status != string(models.StatusCompleted) {
		t.Errorf("status = %q, want completed", response.Status)
	}
	if response.Result == nil || response.Result.Text != text {
		t.Errorf("result = %+v, want text %q", response.Result, text)
	}
}

func TestHandleGetResultBadID(t *testing.T) {
	app := newGenerateApp(newStubGenerationRepo(), &stubWorker{})

	req := httptest.NewRequest("GET", "/generations/not-a-uuid", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleGetResultNotFound(t *testing.T) {
	app := newGenerateApp(newStubGenerationRepo(), &stubWorker{})

	req := httptest.NewRequest("GET", "/generations/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
