package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"kvassess/internal/service"
	"kvassess/internal/transport/rest/handler"
	"kvassess/internal/transport/rest/middleware"
	"kvassess/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	QuestionService *service.QuestionService
	SessionService  *service.SessionService
	ScoringService  *service.ScoringService
	InsightService  *service.InsightService
	ExportService   *service.ExportService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.AuthService)
	resultsHandler := handler.NewResultsHandler(c.SessionService, c.QuestionService, c.ScoringService, c.InsightService)
	exportHandler := handler.NewExportHandler(c.SessionService, c.ExportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")

	// Question catalog (public, read-only)
	v1.HandleFunc("/questions/channels", questionHandler.ListChannels).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/channels/{channel}", questionHandler.GetChannel).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/summary", questionHandler.Summary).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/{id}", questionHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket dashboard (facilitator token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Participant routes (require session-scoped token)
	participantRoutes := v1.NewRoute().Subrouter()
	participantRoutes.Use(authMW.RequireParticipant)

	participantRoutes.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{id}/answers/{questionId}", sessionHandler.SaveAnswer).Methods("PUT", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{id}/comments/{questionId}", sessionHandler.SaveComment).Methods("PUT", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{id}/complete", sessionHandler.Complete).Methods("POST", "OPTIONS")

	// Results routes (participant for own session, or facilitator)
	resultRoutes := v1.NewRoute().Subrouter()
	resultRoutes.Use(authMW.RequireSessionAccess)

	resultRoutes.HandleFunc("/sessions/{id}/scores", resultsHandler.Scores).Methods("GET", "OPTIONS")
	resultRoutes.HandleFunc("/sessions/{id}/insights", resultsHandler.Insights).Methods("GET", "OPTIONS")
	resultRoutes.HandleFunc("/sessions/{id}/narrative", resultsHandler.Narrative).Methods("GET", "OPTIONS")
	resultRoutes.HandleFunc("/sessions/{id}/summary", resultsHandler.Summary).Methods("GET", "OPTIONS")
	resultRoutes.HandleFunc("/sessions/{id}/export/json", exportHandler.JSON).Methods("GET", "OPTIONS")
	resultRoutes.HandleFunc("/sessions/{id}/export/csv", exportHandler.CSV).Methods("GET", "OPTIONS")

	// Facilitator routes (require facilitator auth)
	facilitatorRoutes := v1.NewRoute().Subrouter()
	facilitatorRoutes.Use(authMW.RequireFacilitator)

	facilitatorRoutes.HandleFunc("/sessions", sessionHandler.List).Methods("GET", "OPTIONS")
	facilitatorRoutes.HandleFunc("/sessions/{id}", sessionHandler.Delete).Methods("DELETE", "OPTIONS")

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
