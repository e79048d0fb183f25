// Package api is the catalog browser: the rendered catalog page plus the
// REST endpoints that edit the underlying data files.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meur/lookbook/internal/render"
	"github.com/meur/lookbook/internal/storage"
)

// Server holds the HTTP server dependencies
type Server struct {
	store    *storage.Store
	renderer *render.Renderer
	log      zerolog.Logger
	router   chi.Router
}

// New creates a new API server
func New(store *storage.Store, renderer *render.Renderer, log zerolog.Logger) *Server {
	s := &Server{
		store:    store,
		renderer: renderer,
		log:      log,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleCatalog)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/data/{collection}", s.handleGetData)
		r.Get("/search/{query}", s.handleSearch)
		r.Get("/item/{name}", s.handleGetItem)
		r.Get("/page/{page}", s.handleGetPage)

		r.Put("/item/rename", s.handleRenameItem)
		r.Put("/item/category", s.handleChangeCategory)
		r.Put("/item/season", s.handleChangeSeason)
		r.Delete("/page/{collection}/{page}", s.handleDeletePage)
	})

	// Page images per collection
	for _, c := range s.store.Config().Collections {
		if c.ImageDir == "" {
			continue
		}
		FileServer(s.router, "/collection-images/"+c.Name, http.Dir(c.ImageDir))
	}

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// requestLogger tags every request with an id and logs the outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("request_id", uuid.NewString()).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// respondStoreError maps storage sentinels onto HTTP statuses. Anything
// unrecognized surfaces as a 500 with the raw error message.
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrUnknownCollection), errors.Is(err, storage.ErrNoOp):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
