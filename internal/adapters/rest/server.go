package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"catalog-service/internal/configs"
	"catalog-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter builds the chi router with all catalog and favorites routes.
func NewRouter(cfg configs.RESTconfig, catalog *CatalogHandler, favorites *FavoritesHandler, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID", "X-User-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, r, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api/v1/properties", func(r chi.Router) {
		r.Get("/", catalog.ListProperties)
		r.Get("/filters", catalog.GetFilterOptions)
		r.Get("/{slug}", catalog.GetPropertyDetails)
	})

	// favorites need PostgreSQL and are left out without it
	if favorites != nil {
		r.Route("/api/v1/favorites", func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Get("/", favorites.GetUserFavorites)
			r.Get("/ids", favorites.GetUserFavoriteIDs)
			r.Post("/", favorites.AddToFavorites)
			r.Delete("/{propertyID}", favorites.RemoveFromFavorites)
		})
	}

	return r
}

func NewServer(cfg configs.RESTconfig, catalog *CatalogHandler, favorites *FavoritesHandler, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.PORT,
		Handler:           NewRouter(cfg, catalog, favorites, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start blocks until the server is stopped.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
