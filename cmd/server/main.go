package main

import (
	"context"
	"time"

	"scholarspace-backend/config"
	"scholarspace-backend/handlers"
	"scholarspace-backend/migrations"
	"scholarspace-backend/repository"
	"scholarspace-backend/service"
	"scholarspace-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	if err := migrations.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	db, err := initPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize Postgres", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Postgres connection established")

	documentStorage, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize document storage", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	paperRepo := repository.NewPaperRepository(db)

	// Initialize services
	authService := service.NewAuthService(
		service.WithCredentialStore(userRepo),
		service.WithSigningKey([]byte(cfg.JWTSecret)),
		service.WithTokenTTL(cfg.TokenTTL),
	)
	paperService := service.NewPaperService(
		service.WithPaperStore(paperRepo),
		service.WithDocumentStorage(documentStorage),
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	paperHandler := handlers.NewPaperHandler(paperService)
	documentHandler := handlers.NewDocumentHandler(paperService)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		papers := api.Group("/papers")
		{
			papers.POST("/upload", paperHandler.UploadPaper)
			papers.GET("", paperHandler.ListPapers)
			papers.GET("/filter", paperHandler.FilterPapers)
			papers.GET("/analytics/stats", paperHandler.GetStats)
			papers.GET("/:id", paperHandler.GetPaper)
			papers.POST("/:id/favorite", paperHandler.ToggleFavorite)

			documents := papers.Group("", handlers.RequireAuth(authService))
			{
				documents.POST("/:id/document", documentHandler.AttachDocument)
				documents.GET("/:id/document", documentHandler.GetDocument)
			}
		}
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// requestLogger logs each request with method, path, status and latency
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
