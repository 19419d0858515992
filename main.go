package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/config"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/handler"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/middleware"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/pkg/logger"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Photo attachment storage is optional; the pipeline works without it
	var photoStore *service.PhotoStore
	if cfg.Minio.Endpoint != "" {
		photoStore, err = service.NewPhotoStore(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize photo storage", "error", err)
			os.Exit(1)
		}
		if err := photoStore.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure photo bucket", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("photo storage not configured, attachment uploads disabled")
	}

	// Initialize the record store and services
	service.InitWorkOrderStore(&cfg.Store)
	pipeline := service.NewPipeline(cfg.Document)
	ratingSvc := service.NewRatingService(&cfg.Rating)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	documentHandler := handler.NewDocumentHandler(pipeline)
	workOrderHandler := handler.NewWorkOrderHandler(photoStore, documentHandler)
	ratingHandler := handler.NewRatingHandler(ratingSvc)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Correlation ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/ratings/submit", ratingHandler.Submit)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/documents/generate", documentHandler.Generate)

		protected.POST("/work-orders", workOrderHandler.Submit)
		protected.GET("/work-orders", workOrderHandler.List)
		protected.GET("/work-orders/export/csv", workOrderHandler.ExportCSV)
		protected.GET("/work-orders/export/dates", workOrderHandler.ExportDates)
		protected.GET("/work-orders/:id", workOrderHandler.Get)
		protected.PUT("/work-orders/:id/status", workOrderHandler.UpdateStatus)
		protected.DELETE("/work-orders/:id", workOrderHandler.Delete)
		protected.POST("/work-orders/:id/photos", workOrderHandler.UploadPhoto)
		protected.POST("/work-orders/:id/document", workOrderHandler.GenerateDocument)

		protected.POST("/ratings", ratingHandler.Issue)
		protected.GET("/ratings", ratingHandler.List)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers for the three portal origins
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
