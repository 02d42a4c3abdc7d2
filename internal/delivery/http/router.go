package http

import (
	"net/http"

	"ayursathi-api/internal/delivery/http/handler"
	"ayursathi-api/internal/delivery/http/middleware"
	"ayursathi-api/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	diagnosisHandler *handler.DiagnosisHandler
	auditLogHandler  *handler.AuditLogHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	diagnosisHandler *handler.DiagnosisHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		userHandler:      userHandler,
		diagnosisHandler: diagnosisHandler,
		auditLogHandler:  auditLogHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// User profile (protected)
	user := api.PathPrefix("/user").Subrouter()
	user.Use(r.authMiddleware.Authenticate)
	user.HandleFunc("/profile", r.userHandler.GetProfile).Methods(http.MethodGet)
	user.HandleFunc("/profile", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	user.HandleFunc("/medical-history", r.userHandler.UpdateMedicalHistory).Methods(http.MethodPut)
	user.HandleFunc("/activity", r.auditLogHandler.GetActivity).Methods(http.MethodGet)

	// Remedies lookup is public; registered before the protected {id} routes
	api.HandleFunc("/diagnose/traditional-remedies/{category}", r.diagnosisHandler.TraditionalRemedies).Methods(http.MethodGet)

	// Diagnose routes (protected)
	diagnose := api.PathPrefix("/diagnose").Subrouter()
	diagnose.Use(r.authMiddleware.Authenticate)
	diagnose.HandleFunc("", r.diagnosisHandler.Diagnose).Methods(http.MethodPost)
	diagnose.HandleFunc("", r.diagnosisHandler.ListDiagnoses).Methods(http.MethodGet)
	diagnose.HandleFunc("/ayurvedic-guidance", r.diagnosisHandler.AyurvedicGuidance).Methods(http.MethodPost)
	diagnose.HandleFunc("/{id}", r.diagnosisHandler.GetDiagnosis).Methods(http.MethodGet)
	diagnose.HandleFunc("/{id}", r.diagnosisHandler.UpdateDiagnosis).Methods(http.MethodPatch)
	diagnose.HandleFunc("/{id}", r.diagnosisHandler.DeleteDiagnosis).Methods(http.MethodDelete)

	// Preflight requests match no method-bound route; answer them here so the
	// CORS middleware still runs
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.router.Use(metrics.Middleware)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
