package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeworks/resume-builder/internal/models"
	"resumeworks/resume-builder/internal/services"
)

type stubDocumentRepo struct {
	docs map[uuid.UUID]*models.Document
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: make(map[uuid.UUID]*models.Document)}
}

func (r *stubDocumentRepo) Create(document *models.Document) error {
	r.docs[document.ID] = document
	return nil
}

func (r *stubDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, stubError("document not found")
	}
	return doc, nil
}

func (r *stubDocumentRepo) Delete(id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

func newExportApp(t *testing.T, docRepo *stubDocumentRepo, eventRepo *stubEventRepo) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	handler := NewExportHandler(
		services.NewResumeRendererService("Built with Resume Builder"),
		services.NewStorageService(dir, dir),
		docRepo,
		eventRepo,
	)

	app := fiber.New()
	app.Post("/resumes/export", handler.HandleExport)
	app.Get("/documents/:id/download", handler.HandleDownload)
	return app
}

func exportRequestBody(t *testing.T, template string) []byte {
	t.Helper()

	body, err := json.Marshal(models.ExportRequest{
		Resume: models.ResumeData{
			FullName: "Jordan Rivera",
			Summary:  "Backend engineer with six years of Go experience.",
			Skills:   []string{"Go", "PostgreSQL"},
		},
		Template: template,
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestHandleExport(t *testing.T) {
	docRepo := newStubDocumentRepo()
	eventRepo := &stubEventRepo{}
	app := newExportApp(t, docRepo, eventRepo)

	req := httptest.NewRequest("POST", "/resumes/export", bytes.NewReader(exportRequestBody(t, "modern")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var response models.ExportResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if response.Filename != "jordan_rivera_modern.docx" {
		t.Errorf("filename = %q", response.Filename)
	}
	if !strings.Contains(response.Download, response.ID) {
		t.Errorf("download link %q missing document ID", response.Download)
	}

	docID, err := uuid.Parse(response.ID)
	if err != nil {
		t.Fatalf("response ID is not a UUID: %v", err)
	}

	doc, ok := docRepo.docs[docID]
	if !ok {
		t.Fatal("document record was not persisted")
	}
	if _, err := os.Stat(doc.FilePath); err != nil {
		t.Errorf("rendered file missing on disk: %v", err)
	}
	if doc.SizeBytes == 0 {
		t.Error("document size is zero")
	}

	if len(eventRepo.events) != 1 || eventRepo.events[0].Event != models.EventResumeExported {
		t.Errorf("events = %+v, want one resume_exported", eventRepo.events)
	}
	if eventRepo.events[0].Template != "modern" {
		t.Errorf("event template = %q, want modern", eventRepo.events[0].Template)
	}
}

func TestHandleExportUnknownTemplate(t *testing.T) {
	app := newExportApp(t, newStubDocumentRepo(), &stubEventRepo{})

	req := httptest.NewRequest("POST", "/resumes/export", bytes.NewReader(exportRequestBody(t, "papyrus")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleDownload(t *testing.T) {
	docRepo := newStubDocumentRepo()
	app := newExportApp(t, docRepo, &stubEventRepo{})

	// Export first, then download what was stored.
	req := httptest.NewRequest("POST", "/resumes/export", bytes.NewReader(exportRequestBody(t, "")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var response models.ExportResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}

	dlReq := httptest.NewRequest("GET", "/documents/"+response.ID+"/download", nil)
	dlResp, err := app.Test(dlReq)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if dlResp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", dlResp.StatusCode)
	}

	disposition := dlResp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, response.Filename) {
		t.Errorf("Content-Disposition = %q, want filename %q", disposition, response.Filename)
	}
}

func TestHandleDownloadNotFound(t *testing.T) {
	app := newExportApp(t, newStubDocumentRepo(), &stubEventRepo{})

	req := httptest.NewRequest("GET", "/documents/"+uuid.NewString()+"/download", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
