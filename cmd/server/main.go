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

	"github.com/gokulraj121/learn-it-faster/internal/config"
	"github.com/gokulraj121/learn-it-faster/internal/database"
	"github.com/gokulraj121/learn-it-faster/internal/handlers"
	"github.com/gokulraj121/learn-it-faster/internal/middleware"
	"github.com/gokulraj121/learn-it-faster/internal/repository"
	"github.com/gokulraj121/learn-it-faster/internal/router"
	"github.com/gokulraj121/learn-it-faster/internal/services"
	"github.com/gokulraj121/learn-it-faster/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Learn It Faster backend...")

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

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	flashcardRepo := repository.NewFlashcardRepo(pool)
	infographicRepo := repository.NewInfographicRepo(pool)
	conversionRepo := repository.NewConversionRepo(pool)

	// ──── Step 5: Initialize Model Clients ────
	llmClient := services.NewLLMClient(cfg.LLMAPIURL, cfg.LLMAPIToken, cfg.LLMConcurrentReqs)
	log.Println("✓ Text generation client initialized")

	visionService, err := services.NewVisionService(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("✗ Vision client initialization failed: %v", err)
	}
	defer visionService.Close()
	log.Println("✓ Vision client initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth)
	billingService := services.NewBillingService(redisClients.Queue, cfg.FreeDailyQuota)
	eventPublisher := services.NewEventPublisher(redisClients.Queue)
	exportService := services.NewExportService()
	fileExtractService := services.NewFileExtractService()
	flashcardService := services.NewFlashcardService(llmClient, flashcardRepo, eventPublisher)
	infographicService := services.NewInfographicService(llmClient, infographicRepo, eventPublisher)
	convertService := services.NewConvertService(fileExtractService, visionService, llmClient)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService, billingService, exportService)
	infographicHandler := handlers.NewInfographicHandler(infographicService, billingService, exportService)
	convertHandler := handlers.NewConvertHandler(convertService, conversionRepo)
	userHandler := handlers.NewUserHandler(authService, billingService)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		flashcardHandler,
		infographicHandler,
		convertHandler,
		userHandler,
		wsHub,
		cfg.FrontendURL,
	)

	// No WriteTimeout: generation handlers wait on the hosted model in the
	// request, and a cold model can take tens of seconds before the response
	// is written. Slow clients are still bounded by ReadTimeout and the
	// request context.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
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

	log.Printf("✓ Learn It Faster backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
