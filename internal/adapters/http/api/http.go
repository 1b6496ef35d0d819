// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	service "github.com/leodovqa/palworld-data-tool/internal/app"
	"github.com/leodovqa/palworld-data-tool/internal/domain/detail"
	"github.com/leodovqa/palworld-data-tool/internal/domain/facet"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/sorting"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	compressLevel = 5
	corsMaxAge    = 300
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Table(ctx context.Context, req service.TableRequest) (service.Table, error)
	Detail(ctx context.Context, id string) (detail.View, error)
	Facets(ctx context.Context) (facet.Index, error)
	Levels(ctx context.Context, mastery string) ([]int, error)
	Columns(ctx context.Context) []pal.Column
	ElementIcons(ctx context.Context, names []string) []detail.Element
}

// Server wires HTTP routes for the table API.
type Server struct {
	deps        Dependencies
	router      chi.Router
	logger      logger.Logger
	corsOrigins []string

	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	palsHandler   *PalsHandler
	facetsHandler *FacetsHandler
}

// NewServer creates a new API server with all handlers and routes.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:        deps,
		router:      chi.NewRouter(),
		logger:      logger.Nop(),
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.palsHandler = NewPalsHandler(deps, s.logger)
	s.facetsHandler = NewFacetsHandler(deps)

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the router so docs and the UI can be mounted next to the API.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(compressLevel))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         corsMaxAge,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/columns", MetricsMiddleware(s.facetsHandler.HandleColumns, "columns"))
		r.Get("/facets", MetricsMiddleware(s.facetsHandler.HandleFacets, "facets"))
		r.Get("/facets/levels", MetricsMiddleware(s.facetsHandler.HandleLevels, "levels"))
		r.Get("/passives", MetricsMiddleware(s.facetsHandler.HandlePassives, "passives"))

		r.Get("/pals", MetricsMiddleware(s.palsHandler.HandleTable, "pals"))
		r.Get("/pals.csv", MetricsMiddleware(s.palsHandler.HandleCSV, "pals_csv"))
		r.Get("/pals/{id}", MetricsMiddleware(s.palsHandler.HandleDetail, "detail"))
	})

	s.router.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	s.router.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service and domain errors to status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, sorting.ErrUnknownKey),
		errors.Is(err, sorting.ErrUnknownDirection):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", ErrUnavailable)
	default:
		writeError(w, http.StatusInternalServerError, "internal", nil)
	}
}
