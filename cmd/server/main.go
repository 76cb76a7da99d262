package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	rootconfig "kvassess/config"
	"kvassess/internal/cache"
	"kvassess/internal/config"
	"kvassess/internal/repository"
	"kvassess/internal/service"
	"kvassess/internal/transport/rest"
	"kvassess/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := rootconfig.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Channel narrative: %s", aiConfig.Models.ChannelNarrative)
	log.Printf("  Executive summary: %s", aiConfig.Models.ExecutiveSummary)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:           configured ✓")
	} else {
		log.Println("  API Key:           NOT SET (using template narratives)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("kvassess")

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories and caches
	sessionRepo := repository.NewSessionRepo(db)
	sessionCache := cache.NewSessionCache(rdb)

	// Load the question catalog (falls back to the built-in set on error)
	questionSvc := service.NewQuestionService(cfg.QuestionFile)
	log.Printf("Question catalog ready: %d questions in %d channels", questionSvc.TotalQuestions(), len(questionSvc.Channels()))

	// Initialize services
	authSvc := service.NewAuthService()
	scoringSvc := service.NewScoringService()
	insightSvc := service.NewInsightService()
	exportSvc := service.NewExportService(questionSvc, scoringSvc)
	sessionSvc := service.NewSessionService(sessionRepo, sessionCache, questionSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessionSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		QuestionService: questionSvc,
		SessionService:  sessionSvc,
		ScoringService:  scoringSvc,
		InsightService:  insightSvc,
		ExportService:   exportSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/sessions")
		log.Println("  GET  /v1/questions/channels")
		log.Println("  PUT  /v1/sessions/{id}/answers/{questionId}")
		log.Println("  POST /v1/sessions/{id}/complete")
		log.Println("  GET  /v1/sessions/{id}/scores")
		log.Println("  GET  /v1/sessions/{id}/insights")
		log.Println("  GET  /v1/sessions/{id}/export/{json|csv}")
		log.Println("  WS   /v1/ws/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
