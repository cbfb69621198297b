package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-minutes/docs"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	pkgai "github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meeting-minutes/pkg/validator"
)

// @title           Meeting Minutes API
// @version         1.0
// @description     Turns meeting transcripts into structured minutes

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	ctx := context.Background()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		log.Println("🔄 Applying sql-migrate migrations...")
		n, err := database.Migrate(db, database.MigrationsDir, migrate.Up, 0)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Printf("✅ Applied %d migrations", n)
	} else {
		log.Println("🔄 Skipping migrations; run `minutesctl migrate up` to manage the schema")
	}

	// Reply cache: Redis when enabled, in-process otherwise
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
	} else {
		memory := cache.NewMemoryStore()
		defer memory.Close()
		store = memory
	}

	// Summary archive
	var archive minutes.Archive
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archive = minioClient
	}

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	var generator pkgai.Generator
	var catalog minutes.ModelCatalog
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		ollama := pkgai.NewOllamaClient(&cfg.Ollama)
		generator, catalog = ollama, ollama
	case config.ProviderGemini:
		gemini, err := pkgai.NewGeminiClient(ctx, &cfg.Gemini)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		generator = gemini
	case config.ProviderMock:
		log.Println("⚠️  LLM running in MOCK mode (template summaries only)")
	}

	var transcriber pkgai.Transcriber
	if cfg.Speech.Provider == config.SpeechProviderAssemblyAI {
		transcriber = pkgai.NewAssemblyAIClient(&cfg.Assembly)
	} else {
		transcriber = pkgai.NewRemoteSpeechClient(&cfg.Speech)
	}

	// Initialize minutes service
	log.Println("📝 Initializing minutes service...")
	minutesService := minutes.NewService(minutes.Dependencies{
		Repo:        repository.NewSummaryRepository(db),
		Generator:   generator,
		Catalog:     catalog,
		Transcriber: transcriber,
		Cache:       store,
		Archive:     archive,
		Logger:      logger,
	}, minutes.Options{
		CacheTTL:      cfg.Redis.CacheTTL,
		PresignExpiry: cfg.Storage.PresignExpiry,
	})

	// Bearer auth is enforced only when a Supabase secret is configured
	var tokenValidator httpmw.TokenValidator
	if cfg.Auth.SupabaseJWTSecret != "" {
		log.Println("🔑 Initializing JWT manager...")
		tokenValidator = jwt.NewManager(cfg.Auth.SupabaseJWTSecret, cfg.Auth.Audience, 0)
	} else {
		log.Println("⚠️  SUPABASE_JWT_SECRET not set, API is open to anonymous callers")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		httpmw.EchoAuth(tokenValidator),
		handler.NewSummaryHandler(minutesService, logger),
		handler.NewTranscriptionHandler(minutesService, logger, cfg.Server.MaxUploadBytes),
		handler.NewHealthHandler(minutesService, logger, cfg.Server.Environment),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🤖 LLM provider: %s", cfg.LLM.Provider)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
