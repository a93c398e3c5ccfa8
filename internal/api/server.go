// Package api provides the HTTP API server and handlers for the TapeVault application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tapevault/tapevault-server/internal/ratelimit"
	"github.com/tapevault/tapevault-server/internal/service"
)

// Version is the API version reported in the OpenAPI document.
const Version = "1.0.0"

// Services groups the business logic services used by the API server.
type Services struct {
	Catalog    *service.Catalog
	Songs      *service.Songs
	Normalizer *service.Normalizer
	Importer   *service.Importer
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services      *Services
	router        *chi.Mux
	api           huma.API
	logger        *slog.Logger
	rescanLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	humaConfig := huma.DefaultConfig("TapeVault API", Version)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		services: services,
		router:   router,
		api:      api,
		logger:   logger,
		// Rescans walk the whole library, so keep them infrequent.
		rescanLimiter: ratelimit.New(0.1, 1),
	}

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerSongRoutes()
	s.registerNormalizeRoutes()
	s.registerImportRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
