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

	"promptforge-backend/internal/config"
	"promptforge-backend/internal/database"
	"promptforge-backend/internal/handlers"
	"promptforge-backend/internal/middleware"
	"promptforge-backend/internal/repository"
	"promptforge-backend/internal/router"
	"promptforge-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting PromptForge Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	projectRepo := repository.NewProjectRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClient, jwtAuth)
	generateService := services.NewGenerateService(geminiService)

	// ──── Initialize Admission Controller ────
	budgets := map[middleware.TrafficCategory]middleware.Budget{
		middleware.TrafficAuth: {
			Limit:   cfg.AuthLimit,
			Window:  cfg.AuthWindow,
			Message: "Too many authentication attempts, please try again later.",
		},
		middleware.TrafficAI: {
			Limit:   cfg.AILimit,
			Window:  cfg.AIWindow,
			Message: "You have reached the limit of AI generation requests. Please try again later or upgrade your plan.",
		},
		middleware.TrafficProject: {
			Limit:   cfg.ProjectLimit,
			Window:  cfg.ProjectWindow,
			Message: "You have reached the project creation/update limit. Please try again later.",
		},
		middleware.TrafficDefault: {
			Limit:   cfg.DefaultLimit,
			Window:  cfg.DefaultWindow,
			Message: "Too many requests, please try again later.",
		},
	}
	admission := middleware.NewAdmissionController(budgets, cfg.RateLimitWhitelist, cfg.Env == "development")
	log.Println("✓ Admission controller initialized")

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	generateHandler := handlers.NewGenerateHandler(generateService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(jwtAuth, admission, authHandler, projectHandler, generateHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ PromptForge Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
