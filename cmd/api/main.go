package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"alfredoptarigan/ai-interview/internal/config"
	"alfredoptarigan/ai-interview/internal/handlers"
	"alfredoptarigan/ai-interview/internal/repositories"
	"alfredoptarigan/ai-interview/internal/routes"
	"alfredoptarigan/ai-interview/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Sentry error tracking
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Server.Env,
		}); err != nil {
			log.Printf("⚠️  Sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Println("✅ Sentry initialized")
		}
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	pdfParser := services.NewPDFParserService()
	tokens := services.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize text generation. Without a key every generation falls back.
	var generator services.TextGenerator = services.UnavailableGenerator{}
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		generator = geminiService
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, using fallback questions and feedback")
	}

	// Initialize the optional resume index
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var resumeIndex services.ResumeIndex
	var worker services.Worker
	if cfg.IndexEnabled() {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		resumeIndex = services.NewResumeIndex(resumeRepo, geminiService, qdrantService)
		worker = services.NewWorker(resumeRepo, resumeIndex, cfg.Worker.Concurrency)
		worker.Start(ctx)
	} else {
		log.Println("⚠️  Resume index disabled")
	}

	var indexQueue services.IndexQueue
	if worker != nil {
		indexQueue = worker
	}

	authService := services.NewAuthService(userRepo, tokens)
	resumeService := services.NewResumeService(
		resumeRepo,
		storageService,
		pdfParser,
		indexQueue,
		cfg.Storage.MaxFileSize,
	)
	interviewService := services.NewInterviewService(
		interviewRepo,
		resumeRepo,
		services.NewQuestionGenerator(generator, cfg.Interview.ResumePromptChars, cfg.Interview.MaxQuestions),
		services.NewFeedbackGenerator(generator, services.ParsePairingPolicy(cfg.Interview.FeedbackPairing)),
		resumeIndex,
		cfg.Interview.HistoryLimit,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	validator, err := handlers.NewRequestValidator()
	if err != nil {
		log.Fatalf("❌ Failed to initialize request validator: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to access database handle: %v", err)
	}

	h := routes.Handlers{
		Health:    handlers.NewHealthHandler(sqlDB.Ping),
		Auth:      handlers.NewAuthHandler(authService, validator),
		Upload:    handlers.NewUploadHandler(resumeService),
		Interview: handlers.NewInterviewHandler(interviewService, validator),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	if cfg.Sentry.DSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Setup(app, cfg, tokens, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
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

func customErrorHandler(c *fiber.Ctx, err error) error {
	if handlers.StatusFor(err) >= fiber.StatusInternalServerError {
		sentry.CaptureException(err)
	}
	return handlers.ErrorHandler(c, err)
}
