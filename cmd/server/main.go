package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytehacks/bumblebee_service/internal/audio"
	"github.com/bytehacks/bumblebee_service/internal/client"
	"github.com/bytehacks/bumblebee_service/internal/config"
	"github.com/bytehacks/bumblebee_service/internal/handler/http"
	"github.com/bytehacks/bumblebee_service/internal/logger"
	"github.com/bytehacks/bumblebee_service/internal/repository"
	"github.com/bytehacks/bumblebee_service/internal/server"
	"github.com/bytehacks/bumblebee_service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info().Str("env", cfg.Environment).Msg("Starting bumblebee_service")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Gemini client: API key first, Vertex project as fallback
	var geminiClient *client.GeminiClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = client.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = geminiClient.WithModel(cfg.GeminiModel)
			log.Info().Str("model", cfg.GeminiModel).Msg("Gemini client initialized")
		}
	} else if cfg.GCPProject != "" {
		geminiClient, err = client.NewGeminiVertexClient(ctx, cfg.GCPProject, cfg.GCPLocation)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Gemini Vertex client")
		} else {
			geminiClient = geminiClient.WithModel(cfg.GeminiModel)
			log.Info().
				Str("project", cfg.GCPProject).
				Str("location", cfg.GCPLocation).
				Msg("Gemini Vertex client initialized")
		}
	} else {
		log.Warn().Msg("No Gemini credentials configured")
	}

	// Initialize OpenAI client
	var openaiClient *client.OpenAIClient
	if cfg.OpenAIAPIKey != "" {
		openaiClient = client.NewOpenAIClient(cfg.OpenAIAPIKey).WithModel(cfg.OpenAIModel)
		log.Info().Str("model", cfg.OpenAIModel).Msg("OpenAI client initialized")
	}

	// Initialize phoneme model client
	phonemeClient := client.NewPhonemeClient(cfg.PhonemeEndpoint, cfg.PhonemeAPIKey, cfg.PhonemeTimeout)
	if cfg.PhonemeEndpoint == "" {
		log.Warn().Msg("PHONEME_ENDPOINT not set, phoneme inference will fail")
	}

	// Initialize Redis client
	var redisClient *client.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = client.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Redis client")
		} else {
			log.Info().Msg("Redis client initialized")
		}
	} else {
		log.Warn().Msg("REDIS_URL not set, profile persistence disabled")
	}

	// Initialize Postgres client
	var postgresClient *client.PostgresClient
	if cfg.DatabaseURL != "" {
		postgresClient, err = client.NewPostgresClient(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Postgres client")
		} else {
			log.Info().Msg("Postgres client initialized")
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set, score persistence disabled")
	}

	// Initialize Cloudflare R2 client (optional clip archive)
	var cloudflareClient *client.CloudflareClient
	if cfg.CloudflareAccessKeyID != "" && cfg.CloudflareSecretKey != "" && cfg.CloudflareR2Endpoint != "" && cfg.CloudflareBucketName != "" {
		cloudflareClient, err = client.NewCloudflareClient(ctx,
			cfg.CloudflareAccessKeyID,
			cfg.CloudflareSecretKey,
			cfg.CloudflareR2Endpoint,
			cfg.CloudflareBucketName,
			cfg.CloudflarePublicURL,
		)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Cloudflare client")
		} else {
			log.Info().Msg("Cloudflare R2 client initialized")
		}
	} else {
		log.Warn().Msg("Cloudflare configuration missing, clip archival disabled")
	}

	// Initialize repositories
	scoreRepo := repository.NewPostgresDailyScoreRepository(postgresClient)
	if postgresClient != nil {
		if err := scoreRepo.EnsureSchema(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to ensure daily_scores schema")
		}
	}
	profileRepo := repository.NewRedisProfileRepository(redisClient)

	// Pick the scoring provider
	var scorer service.Scorer
	var extractor service.FactExtractor
	switch cfg.ScorerProvider {
	case "openai":
		scorer = service.NewOpenAIScorer(openaiClient)
		extractor = service.NewOpenAIExtractor(openaiClient)
	default:
		scorer = service.NewGeminiScorer(geminiClient)
		extractor = service.NewGeminiExtractor(geminiClient)
	}
	log.Info().Str("provider", cfg.ScorerProvider).Msg("Scoring provider configured")

	// Initialize services
	scoreService := service.NewScoreService(scoreRepo, log)
	profileService := service.NewProfileService(profileRepo, extractor, log)
	analysisService := service.NewAnalysisService(
		audio.NewNormalizer(),
		phonemeClient,
		scorer,
		scoreService,
		profileService,
		cloudflareClient,
		log,
	)

	// Initialize handlers
	healthHandler := http.NewHealthHandler()
	analysisHandler := http.NewAnalysisHandler(log, analysisService, cfg.MaxUploadSize)
	scoresHandler := http.NewScoresHandler(log, scoreService)
	profileHandler := http.NewProfileHandler(log, profileService)

	// Initialize HTTP server
	httpServer := server.NewHTTPServer(cfg, log, healthHandler, analysisHandler, scoresHandler, profileHandler)

	// Start server
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Error().Err(err).Msg("HTTP server error")
			cancel()
		}
	}()

	log.Info().Str("http_addr", cfg.HTTPAddress()).Msg("Server started")

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("Shutdown signal received")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Close clients
	if geminiClient != nil {
		geminiClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if postgresClient != nil {
		postgresClient.Close()
	}

	log.Info().Msg("Server stopped")
}
