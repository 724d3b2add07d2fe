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

	"github.com/Lixing-Zhang/food-recommender/internal/catalog"
	"github.com/Lixing-Zhang/food-recommender/internal/config"
	"github.com/Lixing-Zhang/food-recommender/internal/generation"
	"github.com/Lixing-Zhang/food-recommender/internal/handlers"
	"github.com/Lixing-Zhang/food-recommender/internal/mealtime"
	"github.com/Lixing-Zhang/food-recommender/internal/middleware"
	"github.com/Lixing-Zhang/food-recommender/internal/repository"
	"github.com/Lixing-Zhang/food-recommender/internal/service"
	"github.com/Lixing-Zhang/food-recommender/internal/weather"
	"github.com/Lixing-Zhang/food-recommender/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting food recommendation api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	for _, key := range cfg.MissingKeys() {
		log.Warn("upstream API key not configured", "variable", key)
	}

	// Load the catalog; the server cannot run without it
	log.Info("loading food catalog...", "source", cfg.Catalog.Path)
	ctx := context.Background()
	foodCatalog, err := catalog.Load(ctx, cfg.Catalog.Path)
	if err != nil {
		log.Error("failed to load food catalog", "error", err)
		os.Exit(1)
	}
	log.Info("food catalog loaded successfully",
		"categories", len(foodCatalog.Categories()),
		"items", foodCatalog.Len(),
	)

	// Timezone boundaries are loaded once and shared by all requests
	tzResolver, err := mealtime.NewTZFResolver()
	if err != nil {
		log.Error("failed to initialize timezone finder", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	foodRepo := repository.NewInMemoryFoodRepository(foodCatalog.Items())

	// Initialize upstream clients
	weatherClient := weather.NewClient(
		cfg.Weather.APIKey,
		cfg.Weather.BaseURL,
		config.Seconds(cfg.Weather.Timeout),
		log,
	)
	generationClient := generation.NewClient(
		cfg.Generation.APIKey,
		cfg.Generation.BaseURL,
		cfg.Generation.Model,
		config.Seconds(cfg.Generation.Timeout),
		log,
	)

	// Initialize services
	classifier := mealtime.NewClassifier(tzResolver, time.Now)
	recommendationService := service.NewRecommendationService(foodRepo, classifier, weatherClient)
	contentService := service.NewContentService(generationClient)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(foodRepo, log)
	recommendHandler := handlers.NewRecommendHandler(recommendationService, log)
	generationHandler := handlers.NewGenerationHandler(contentService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.Seconds(cfg.Server.RequestTimeout)))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.ServeHTTP)

	r.Post("/recommend", recommendHandler.Recommend)
	r.Post("/generate_recipe", generationHandler.GenerateRecipe)
	r.Post("/generate_description", generationHandler.GenerateDescription)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
