// Package api exposes lattice assembly, candidate search and exit counting
// over HTTP.
//
// # Routes
//
//	GET  /healthz         liveness and build version
//	POST /v1/assemble     edge path array in, lattice out (?format=dot|svg|png|pdf for a drawing)
//	POST /v1/candidates   {"from", "step", "occupied", "seed", "max_attempts", "target_count"}
//	POST /v1/exits        {"at", "kind", "occupied", "beams", "beam_length"}
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stacklattice/pkg/observability"
	"github.com/matzehuels/stacklattice/pkg/pipeline"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 8 << 20

// requestTimeout bounds a single request, including rendering.
const requestTimeout = 30 * time.Second

// Server holds the dependencies shared by all handlers.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
}

// New creates a server. defaults supply every option a request leaves unset.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, defaults: defaults, logger: logger}
}

// Routes returns the HTTP handler for the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/assemble", s.handleAssemble)
		r.Post("/candidates", s.handleCandidates)
		r.Post("/exits", s.handleExits)
	})
	return r
}

// observe logs each request and reports it to the API hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.API()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", d.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
