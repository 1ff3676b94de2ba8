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

	"readypulse/internal/cache"
	"readypulse/internal/config"
	"readypulse/internal/repository"
	"readypulse/internal/service"
	"readypulse/internal/transport/rest"
	"readypulse/internal/transport/ws"
)

// @title ReadyPulse API
// @version 1.0
// @description AI readiness survey backend with JTBD forces analysis
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load scorer config and log model settings
	scorerCfg := config.DefaultScorerConfig()
	log.Printf("Scorer Config:")
	log.Printf("  Model:    %s", scorerCfg.Model)
	log.Printf("  Workers:  %d", scorerCfg.Workers)
	log.Printf("  Retries:  %d", scorerCfg.MaxRetries)
	if scorerCfg.IsEnabled() {
		log.Println("  API Key:  configured ✓")
	} else {
		log.Println("  API Key:  NOT SET (using mock scorer)")
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

	db := mongoClient.Database(cfg.MongoDB)

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

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	analysisRepo := repository.NewAnalysisRepo(db)

	// Initialize caches
	analysisCache := cache.NewAnalysisCache(rdb)
	progressCache := cache.NewProgressCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	orgSvc := service.NewOrganizationService(orgRepo)
	surveySvc := service.NewSurveyService(surveyRepo, responseRepo)
	scorer := service.NewScorerClient(scorerCfg)
	scoringSvc := service.NewScoringService(responseRepo, surveyRepo, progressCache, scorer, scorerCfg.Workers, scorerCfg.MaxRetries)
	analysisSvc := service.NewAnalysisService(surveyRepo, responseRepo, analysisRepo, analysisCache)

	// Inject analysis service so response intake invalidates stale rollups
	surveySvc.SetAnalysisService(analysisSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	scoringSvc.SetBroadcaster(wsHub)
	analysisSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		OrganizationService: orgSvc,
		SurveyService:       surveySvc,
		ScoringService:      scoringSvc,
		AnalysisService:     analysisSvc,
		WSHub:               wsHub,
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
		log.Println("  POST/GET /v1/organizations")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  POST /v1/surveys/{surveyId}/responses")
		log.Println("  POST/GET /v1/surveys/{surveyId}/score")
		log.Println("  POST/GET /v1/surveys/{surveyId}/analysis")
		log.Println("  GET  /v1/analyses/compare")
		log.Println("  WS  /v1/ws/surveys/{surveyId}/dashboard")

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
