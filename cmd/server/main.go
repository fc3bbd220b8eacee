package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/microin-api/internal/cache"
	"github.com/yukikurage/microin-api/internal/config"
	"github.com/yukikurage/microin-api/internal/database"
	"github.com/yukikurage/microin-api/internal/repository"
	"github.com/yukikurage/microin-api/internal/seed"
	"github.com/yukikurage/microin-api/internal/server"
	"github.com/yukikurage/microin-api/internal/services"
)

// @title        MICROIN API
// @version      1.0
// @description  Micro-internship task board with SkillNFT portfolios and AI task recommendations.
// @host         localhost:3001
// @BasePath     /
// @schemes      http
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Initialize store
	store, closeStore, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	// Load demo data
	if cfg.SeedEnabled {
		fixture, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("failed to load seed data: %w", err)
		}
		if err := seed.Apply(ctx, store, fixture); err != nil {
			return fmt.Errorf("failed to apply seed data: %w", err)
		}
		logger.Printf("Seeded %d tasks and %d users", len(fixture.Tasks), len(fixture.Users))
	}

	// Initialize AI service
	var recommender services.Recommender = services.NewAIService(services.AIServiceConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.RecommendationTimeout,
		Logger:  logger,
	})

	// Cache recommendations when Redis is configured
	var serverOpts []server.Option
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, logger)
		defer rdb.Close()
		if rdb.Available() {
			recommender = cache.NewRecommendationCache(recommender, rdb, cfg.RecommendationCacheTTL, logger)
		}
		serverOpts = append(serverOpts, server.WithRedis(rdb))
	}

	taskService := services.NewTaskService(store, recommender, logger)

	// Start server
	if err := server.New(cfg, taskService, logger, serverOpts...).Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newStore(cfg *config.Config) (repository.Store, func(), error) {
	if cfg.StoreDriver != config.StoreDriverSQLite {
		return repository.NewMemoryStore(), func() {}, nil
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}

	return repository.NewGormStore(db), func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}, nil
}
