package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"cultura-llm/internal/config"
	"cultura-llm/internal/db"
	apihttp "cultura-llm/internal/http"
	"cultura-llm/internal/llm"
	"cultura-llm/internal/repository"
	"cultura-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	client, err := llm.NewGeminiClient(ctx,
		cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiVisionModel, cfg.GeminiImageModel, cfg.GeminiEmbedModel,
		logger)
	if err != nil {
		logger.Fatal("gemini client init failed", zap.Error(err))
	}
	if !client.IsAvailable() {
		logger.Warn("gemini api key not configured, running degraded")
	}

	detector := service.NewDetectionService(
		service.NewLinguaDetector(),
		service.NewWhatlangDetector(),
		service.NewGeminiDetector(client),
	)

	cultures := service.NewCultureService()
	filter := service.NewContentFilter()
	adapter := service.NewResponseAdapter(cultures)
	translator := service.NewTranslationService(logger,
		service.NewGeminiTranslator(client),
		service.NewGoogleTranslator(cfg.TranslateAPIURL, cfg.TranslateAPIKey, nil),
	)

	chatSvc := service.NewChatService(client, filter, cultures, detector, adapter, translator, cfg, logger).
		WithSentiment(service.NewSentimentService(client))

	var archiveRepo *repository.PgConversationRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Warn("db connect failed, archive disabled", zap.Error(err))
		} else {
			defer pool.Close()
			archiveRepo = repository.NewPgConversationRepository(pool)
			chatSvc.WithArchive(archiveRepo)
		}
	}

	shareStore := service.NewMemoryShareStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using memory share store", zap.Error(err))
		} else {
			shareStore = service.NewRedisShareStore(redisClient)
		}
		cancel()
	}

	// El store en memoria no expira solo: se purga en segundo plano.
	if janitor, ok := shareStore.(interface{ CleanupExpired() int }); ok {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				if removed := janitor.CleanupExpired(); removed > 0 {
					logger.Info("expired share links purged", zap.Int("count", removed))
				}
			}
		}()
	}

	sessions := service.NewSessionService(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	registry := apihttp.NewConversationRegistry()
	exports := service.NewExportService(logger)
	shareTTL := time.Duration(cfg.ShareTTLHours) * time.Hour

	chatHandler := apihttp.NewChatHandler(logger, sessions, chatSvc, cultures, registry)
	if archiveRepo != nil {
		chatHandler.WithArchive(archiveRepo)
	}
	shareHandler := apihttp.NewShareHandler(logger, shareStore, registry, shareTTL, cfg.ShareBaseURL)
	exportHandler := apihttp.NewExportHandler(logger, exports, registry)
	router := apihttp.NewRouter(logger, sessions, chatHandler, shareHandler, exportHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
