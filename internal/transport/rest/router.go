package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"readypulse/internal/service"
	"readypulse/internal/transport/rest/handler"
	"readypulse/internal/transport/rest/middleware"
	"readypulse/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	OrganizationService *service.OrganizationService
	SurveyService       *service.SurveyService
	ScoringService      *service.ScoringService
	AnalysisService     *service.AnalysisService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	orgHandler := handler.NewOrganizationHandler(c.OrganizationService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	analysisHandler := handler.NewAnalysisHandler(c.ScoringService, c.AnalysisService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/responses", surveyHandler.SubmitResponse).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/surveys/{surveyId}/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/organizations", orgHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/organizations", orgHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/organizations/{orgId}", orgHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/organizations/{orgId}", orgHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/organizations/{orgId}", orgHandler.Delete).Methods("DELETE", "OPTIONS")

	hostRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/open", surveyHandler.Open).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/close", surveyHandler.Close).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/responses", surveyHandler.ListResponses).Methods("GET", "OPTIONS")

	// Scoring and analysis routes
	hostRoutes.HandleFunc("/surveys/{surveyId}/score", analysisHandler.StartScoring).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/score", analysisHandler.GetScoringProgress).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/analysis", analysisHandler.RunAnalysis).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/analysis", analysisHandler.GetAnalysis).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/analyses/compare", analysisHandler.Compare).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
