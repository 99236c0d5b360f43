package server

import (
	"net/http"
	"strings"

	"github.com/agentstation/strainmap/internal/server/handlers"
	"github.com/agentstation/strainmap/internal/server/middleware"
	"github.com/agentstation/strainmap/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.store, s.importer, s.cache, s.startTime)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// LLM routes share one per-client budget
	limited := func(next http.HandlerFunc) http.Handler { return next }
	if s.config.RateLimit > 0 {
		rl := middleware.NewRateLimiter(s.ctx, s.config.RateLimit, s.logger)
		limited = func(next http.HandlerFunc) http.Handler {
			return middleware.RateLimit(rl)(next)
		}
	}

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)

	mux.HandleFunc(prefix+"/strains", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.HandleGetDocument(w, r)
		case http.MethodPost:
			h.HandleSaveDocument(w, r)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})

	mux.HandleFunc(prefix+"/strains/", func(w http.ResponseWriter, r *http.Request) {
		id := extractPathParam(r.URL.Path, prefix+"/strains/")
		if id == "" {
			response.NotFound(w, "Strain ID required", "")
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.HandleGetStrain(w, r, id)
		case http.MethodPut:
			h.HandlePutStrain(w, r, id)
		case http.MethodDelete:
			h.HandleDeleteStrain(w, r, id)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})

	mux.HandleFunc(prefix+"/facets", onlyMethod(http.MethodGet, h.HandleFacets))
	mux.HandleFunc(prefix+"/template", onlyMethod(http.MethodGet, h.HandleTemplate))
	mux.HandleFunc(prefix+"/template/validate", onlyMethod(http.MethodPost, h.HandleValidate))
	mux.HandleFunc(prefix+"/review", onlyMethod(http.MethodPost, h.HandleReview))
	mux.Handle(prefix+"/import", limited(onlyMethod(http.MethodPost, h.HandleImport)))
	mux.Handle(prefix+"/research", limited(onlyMethod(http.MethodPost, h.HandleResearch)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.URL.Path)
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logger(s.logger),
	}
	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = s.config.CORSOrigins
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}
	return middleware.Chain(chain...)(handler)
}

func onlyMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		next(w, r)
	}
}

// extractPathParam returns the first path segment after prefix.
func extractPathParam(path, prefix string) string {
	trimmed := strings.TrimPrefix(path, prefix)
	id, _, _ := strings.Cut(trimmed, "/")
	return id
}
