package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resumeworks/resume-builder/internal/config"
	"resumeworks/resume-builder/internal/handlers"
	"resumeworks/resume-builder/internal/repositories"
	"resumeworks/resume-builder/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	genRepo := repositories.NewGenerationRepository(db)
	eventRepo := repositories.NewUsageEventRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.GeneratedPath)
	if err := storageService.EnsureDirs(); err != nil {
		log.Fatalf("❌ Failed to create storage directories: %v", err)
	}

	parser := services.NewResumeParserService()
	scorer := services.NewAtsScorerService()
	renderer := services.NewResumeRendererService(cfg.Branding.Line)
	promptBuilder := services.NewPromptBuilder()
	chunker := services.NewDraftChunker()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. Without an API key the generators fall back to
	// templates.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, drafting falls back to templates")
	}

	// Initialize the example index. Optional: an empty QDRANT_URL disables
	// retrieval context.
	var exampleIndex services.ExampleIndexService
	if cfg.Qdrant.URL != "" && geminiService != nil {
		exampleIndex, err = services.NewExampleIndexService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := exampleIndex.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant example index initialized successfully")
	} else {
		log.Println("⚠️  Example index disabled")
	}

	// Initialize generators
	summaryService := services.NewSummaryService(
		geminiService,
		exampleIndex,
		promptBuilder,
		cfg.Worker.RetryMaxAttempts,
	)
	coverLetterService := services.NewCoverLetterService(
		geminiService,
		exampleIndex,
		promptBuilder,
		cfg.Worker.RetryMaxAttempts,
	)
	generationService := services.NewGenerationService(
		genRepo,
		eventRepo,
		summaryService,
		coverLetterService,
		geminiService,
		exampleIndex,
		chunker,
	)
	log.Println("✅ Generation service initialized")

	// Initialize worker
	worker := services.NewWorker(
		genRepo,
		generationService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	scoreHandler := handlers.NewScoreHandler(
		scorer,
		parser,
		storageService,
		eventRepo,
		cfg.Storage.MaxFileSize,
		services.ScoreConfig{
			MinKeywordLength: cfg.Scorer.MinKeywordLength,
			MaxKeywords:      cfg.Scorer.MaxKeywords,
		},
	)
	generateHandler := handlers.NewGenerateHandler(genRepo, worker)
	resultHandler := handlers.NewResultHandler(genRepo)
	exportHandler := handlers.NewExportHandler(renderer, storageService, docRepo, eventRepo)
	eventsHandler := handlers.NewEventsHandler(eventRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Builder API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/ats/score", scoreHandler.HandleScore)
	api.Post("/ats/score-file", scoreHandler.HandleScoreFile)
	api.Post("/generate/summary", generateHandler.HandleGenerateSummary)
	api.Post("/generate/cover-letter", generateHandler.HandleGenerateCoverLetter)
	api.Get("/generations/:id", resultHandler.HandleGetResult)
	api.Post("/resumes/export", exportHandler.HandleExport)
	api.Get("/documents/:id/download", exportHandler.HandleDownload)
	api.Get("/events", eventsHandler.HandleListEvents)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Builder API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/ats/score",
				"POST /api/v1/ats/score-file",
				"POST /api/v1/generate/summary",
				"POST /api/v1/generate/cover-letter",
				"GET /api/v1/generations/:id",
				"POST /api/v1/resumes/export",
				"GET /api/v1/documents/:id/download",
				"GET /api/v1/events",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
