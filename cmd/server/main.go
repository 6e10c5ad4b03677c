package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lexiread/api/internal/cache"
	"github.com/lexiread/api/internal/client"
	"github.com/lexiread/api/internal/config"
	"github.com/lexiread/api/internal/database"
	"github.com/lexiread/api/internal/handler"
	"github.com/lexiread/api/internal/middleware"
	"github.com/lexiread/api/internal/srs"
	"github.com/lexiread/api/internal/store"
	"github.com/lexiread/api/internal/textgen"
	"github.com/lexiread/api/internal/vocab"
	"github.com/lexiread/api/internal/warmer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Local dev convenience; the container environment sets everything.
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		// Continue without Redis cache (fail-open)
		redisCache = nil
	}

	pg := store.NewPostgres(db)

	vocabBuilder := vocab.NewBuilder(redisCache,
		vocab.StoreSource{Label: "vocabulary", Store: pg},
		vocab.ScheduleSource{Store: pg},
	)
	picker := srs.NewPicker(pg)

	generator := client.NewGenerator(cfg.GeneratorURL)

	// Audio synthesis is optional; a missing TTS credential only disables
	// audio, never content.
	var synthesizer textgen.Synthesizer
	if cfg.AudioEnabled {
		speech, err := client.NewSpeech(context.Background(), cfg.MediaDir)
		if err != nil {
			log.Printf("Warning: Failed to initialize speech synthesis: %v", err)
		} else {
			synthesizer = speech
			defer speech.Close()
		}
	}

	matcher := textgen.NewMatcher(pg)
	orchestrator := textgen.NewOrchestrator(generator, pg, synthesizer, nil)

	limiter := client.NewRateLimiter(cfg.RateLimitURL)

	contentHandler := handler.NewContentHandler(vocabBuilder, matcher, orchestrator, picker, limiter)
	reviewHandler := handler.NewReviewHandler(pg, picker, vocabBuilder)

	// Initialize and start cache warmer if enabled
	var cacheWarmer *warmer.Warmer
	if cfg.WarmerEnabled {
		cacheWarmer, err = warmer.New(matcher, orchestrator, warmer.Config{
			WordListDir: cfg.WordListDir,
			Interval:    cfg.WarmerInterval,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize warmer: %v", err)
		} else {
			go cacheWarmer.Start(context.Background())
			log.Println("Background cache warmer started")
		}
	}

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.Use(middleware.MetricsMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Warmer status
	r.GET("/warmer/status", func(c *gin.Context) {
		if cacheWarmer != nil {
			c.JSON(200, cacheWarmer.GetStatus())
		} else {
			c.JSON(200, gin.H{"enabled": false, "message": "Warmer is disabled"})
		}
	})

	// Synthesized audio files
	r.Static("/media", cfg.MediaDir)

	// API routes
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Content
		api.POST("/content/generate", contentHandler.Generate)
		api.GET("/vocabulary/stats", contentHandler.Stats)

		// Reviews
		api.POST("/reviews", reviewHandler.Submit)
		api.GET("/reviews/due", reviewHandler.Due)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("API server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
