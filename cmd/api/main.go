package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-tracker/backend/config"
	"github.com/pageza/pantry-tracker/backend/internal/database"
	"github.com/pageza/pantry-tracker/backend/internal/middleware"
	"github.com/pageza/pantry-tracker/backend/internal/router"
	"github.com/pageza/pantry-tracker/backend/internal/server"
	"github.com/pageza/pantry-tracker/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Continue without rate limiting if Redis is not available
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: rate limiting disabled: %v", err)
		redisClient = nil
	} else {
		defer func() { _ = redisClient.Close() }()
	}

	storage, err := config.NewS3Config(ctx, cfg.S3BucketName, cfg.AWSRegion, cfg.S3Endpoint)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	if cfg.LLMAPIKey == "" {
		log.Printf("Warning: OPENROUTER_API_KEY is not set; camera and recipe endpoints will fail")
	}

	inventoryService := service.NewInventoryService(db)
	llmService := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	imageService := service.NewImageService(storage, cfg.PresignTTL, cfg.ImageMaxWidth)

	engine := router.SetupRouter(cfg.AllowedOrigins, router.Dependencies{
		Inventory:     inventoryService,
		LLM:           llmService,
		Capture:       service.NewCaptureService(imageService, llmService, inventoryService),
		Recipes:       service.NewRecipeService(llmService, inventoryService),
		CameraLimiter: middleware.NewCameraRateLimiter(redisClient, cfg.CameraRateLimit),
		RecipeLimiter: middleware.NewRecipeRateLimiter(redisClient, cfg.RecipeRateLimit),
	})

	log.Printf("Starting server in %s mode...", config.GetEnvironment())
	if err := server.New(cfg, engine).Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
