package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"resumeworks/resume-builder/internal/config"
	"resumeworks/resume-builder/internal/services"
)

// Seeds the Qdrant example index from plain-text drafts on disk. Expected
// layout: ./seed_examples/summary/*.txt and ./seed_examples/cover_letter/*.txt.
func main() {
	log.Println("🚀 Starting example ingestion...")

	// Load configuration
	cfg := config.Load()

	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is required for ingestion")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	exampleIndex, err := services.NewExampleIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := exampleIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewDraftChunker()
	ctx := context.Background()

	kinds := []string{"summary", "cover_letter"}

	successCount := 0
	failCount := 0

	for _, kind := range kinds {
		dir := filepath.Join("./seed_examples", kind)
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("⚠️  Cannot read %s, skipping: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			log.Printf("\n📄 Processing: %s (%s)", entry.Name(), kind)

			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("   ❌ Failed to read file: %v", err)
				failCount++
				continue
			}

			text := services.CleanText(string(data))
			if text == "" {
				log.Printf("   ⚠️  Empty file, skipping...")
				failCount++
				continue
			}

			chunks := chunker.ChunkText(text, 1000, 100)
			log.Printf("   ✂️  Created %d chunks", len(chunks))

			stem := strings.TrimSuffix(entry.Name(), ".txt")
			stored := 0

			for i, chunk := range chunks {
				embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
				if err != nil {
					log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
					continue
				}

				draftID := fmt.Sprintf("seed_%s_%s_%d", kind, stem, i)
				if err := exampleIndex.UpsertExample(ctx, draftID, kind, chunk, embedding); err != nil {
					log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
					continue
				}
				stored++
			}

			if stored == len(chunks) {
				log.Printf("   ✅ Successfully ingested %s", entry.Name())
				successCount++
			} else {
				log.Printf("   ⚠️  Stored %d/%d chunks for %s", stored, len(chunks), entry.Name())
				failCount++
			}
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d examples", successCount)
	log.Printf("   ❌ Failed: %d examples", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some examples failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All examples ingested successfully!")
}
