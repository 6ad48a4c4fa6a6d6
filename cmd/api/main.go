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

	"alfredoptarigan/mock-interview/internal/config"
	"alfredoptarigan/mock-interview/internal/handlers"
	"alfredoptarigan/mock-interview/internal/logging"
	"alfredoptarigan/mock-interview/internal/repositories"
	"alfredoptarigan/mock-interview/internal/services"
	"alfredoptarigan/mock-interview/internal/tesseract"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.SetDebug(cfg.Server.Env == "development")
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	answerRepo := repositories.NewAnswerRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	ocrService := services.NewOCRService(
		tesseract.NewRecognizer(cfg.OCR.Language),
		services.NewPopplerRasterizer(cfg.OCR.PopplerPath, cfg.OCR.DPI),
		pdfParser,
		cfg.OCR.MaxDimension,
	)
	resumeService := services.NewResumeService(storageService, ocrService, candidateRepo, cfg.Interview.CompanyTagline)
	ttsService := services.NewElevenLabsService(
		cfg.ElevenLabs.APIKey,
		cfg.ElevenLabs.VoiceID,
		cfg.ElevenLabs.ModelID,
		cfg.ElevenLabs.BaseURL,
		cfg.ElevenLabs.Timeout,
	)
	log.Println("✅ Services initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Company knowledge is optional; without Qdrant prompts run on the résumé alone.
	var knowledgeService services.KnowledgeService
	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Printf("⚠️  Qdrant unavailable, company knowledge disabled: %v\n", err)
	} else if err := qdrantService.InitCollection(ctx); err != nil {
		log.Printf("⚠️  Qdrant collection unavailable, company knowledge disabled: %v\n", err)
	} else {
		chunker := services.NewTextChunker(services.DefaultChunkSize, services.DefaultChunkOverlap)
		knowledgeService = services.NewKnowledgeService(qdrantService, geminiService, chunker)
		log.Println("✅ Qdrant initialized successfully")
	}

	questionService := services.NewQuestionService(geminiService, knowledgeService, cfg.Worker.RetryMaxAttempts)
	interviewerService := services.NewInterviewerService(
		reportRepo,
		candidateRepo,
		answerRepo,
		geminiService,
		knowledgeService,
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Interviewer service initialized")

	// Initialize worker
	worker := services.NewWorker(
		reportRepo,
		interviewerService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	worker.Start(ctx)

	// Initialize handlers
	routes := &handlers.Routes{
		Candidate: handlers.NewCandidateHandler(candidateRepo, resumeService, cfg.Storage.MaxFileSize),
		Interview: handlers.NewInterviewHandler(
			candidateRepo,
			answerRepo,
			questionService,
			cfg.Interview.DefaultQuestionCount,
			cfg.Interview.MaxQuestionCount,
		),
		Speech: handlers.NewSpeechHandler(ttsService),
		Report: handlers.NewReportHandler(
			reportRepo,
			candidateRepo,
			answerRepo,
			services.NewReportRenderer(),
			worker,
		),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Mock Interview API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
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
	routes.Register(app.Group("/api/v1"))

	// Front-end pages
	app.Static("/", cfg.Server.StaticDir)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		cancel()
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
