package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vouchly/backend/internal/config"
	"github.com/vouchly/backend/internal/handlers"
	"github.com/vouchly/backend/internal/middleware"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/internal/pkg/logger"
	"github.com/vouchly/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize logger
	zlog, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFilePath,
		MaxSizeMB:  100,
		MaxAgeDays: 30,
		MaxBackups: 10,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		zlog.Fatal("failed to init S3 service", zap.Error(err))
	}
	businessService := services.NewBusinessService(db)
	reviewService := services.NewReviewService(db)
	uploadService := services.NewUploadService(s3Service, cfg, zlog)
	transcodeService := services.NewTranscodeService(db, zlog)
	mediaService := services.NewMediaService(db, cfg, s3Service, transcodeService, zlog)
	quotaService := services.NewQuotaService(services.NewConfigPlanPolicy(cfg), redisClient, cfg, zlog)
	storageService := services.NewStorageService(db, quotaService)

	// Sweep abandoned multipart sessions so the store can reclaim them
	if cfg.UploadReaperEnabled {
		go func() {
			for {
				time.Sleep(cfg.UploadReaperEvery)
				reaped, err := uploadService.ReapStaleSessions(context.Background(), cfg.UploadReaperTTL)
				if err != nil {
					zlog.Warn("stale upload sweep failed", zap.Error(err))
				} else if reaped > 0 {
					zlog.Info("stale upload sweep aborted sessions", zap.Int("count", reaped))
				}
			}
		}()
	}

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg, zlog))

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(uploadService, mediaService, reviewService, businessService, zlog)
	storageHandler := handlers.NewStorageHandler(storageService, businessService, zlog)
	reviewHandler := handlers.NewReviewHandler(reviewService, businessService, zlog)
	assetHandler := handlers.NewAssetHandler(mediaService, businessService, zlog)
	transcodeHandler := handlers.NewTranscodeHandler(transcodeService, zlog)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Multipart upload protocol (session creation is rate limited per tenant+IP)
		uploads := api.Group("/uploads/multipart")
		uploads.Use(middleware.UploadRateLimit(redisClient, cfg, zlog))
		{
			uploads.POST("/init/:slug", uploadHandler.InitMultipart)
			uploads.GET("/presign", uploadHandler.PresignPart)
			uploads.POST("/complete/:slug", uploadHandler.CompleteMultipart)
			uploads.POST("/abort/:slug", uploadHandler.AbortMultipart)
		}

		// Reviews (submission precondition for uploads)
		api.POST("/reviews/:slug", reviewHandler.CreateReview)
		api.GET("/reviews/:slug/:id", reviewHandler.GetReview)

		// Assets
		api.GET("/assets/:slug/:id/url", assetHandler.GetAssetURL)
		api.PUT("/assets/:slug/:id/metadata", assetHandler.UpdateAssetMetadata)
		api.DELETE("/assets/:slug/:id", assetHandler.DeleteAsset)

		// Storage accounting
		api.GET("/storage/:tenantId", storageHandler.GetUsage)

		// Transcode jobs (worker surface)
		api.GET("/transcode/jobs", transcodeHandler.ListJobs)
		api.GET("/transcode/jobs/:id", transcodeHandler.GetJob)
		api.PUT("/transcode/jobs/:id/status", transcodeHandler.SetJobStatus)
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
