package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/JitendraDubey2004/TalentFlow/internal/config"
	"github.com/JitendraDubey2004/TalentFlow/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config config.ServerConfig
	router *chi.Mux
	repo   storage.Repository
	faults *FaultInjector
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, repo storage.Repository, faults *FaultInjector) *Server {
	s := &Server{
		config: cfg,
		repo:   repo,
		faults: faults,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (public, never fault-injected)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		if s.faults != nil {
			r.Use(s.faults.Middleware)
		}

		// Assessments
		r.Route("/assessments/{jobID}", func(r chi.Router) {
			r.Get("/", s.handleGetAssessment)
			r.Put("/", s.handleSaveAssessment)
			r.Delete("/", s.handleDeleteAssessment)
			r.Post("/submit", s.handleSubmitAssessment)
			r.Get("/submissions", s.handleListSubmissions)
			r.Get("/preview", s.handlePreviewWS)
		})

		// Jobs
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", s.handleListJobs)
			r.Post("/", s.handleCreateJob)
			r.Get("/{id}", s.handleGetJob)
		})

		// Candidates
		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", s.handleListCandidates)
			r.Post("/", s.handleCreateCandidate)
			r.Patch("/{id}/stage", s.handleUpdateCandidateStage)
			r.Get("/{id}/timeline", s.handleGetTimeline)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
