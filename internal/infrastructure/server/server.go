package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	prom "github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/historydoc/internal/domain/commands"
	"github.com/rios0rios0/historydoc/internal/domain/entities"
	promRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/prometheus"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Server exposes the analyze and commit commands over HTTP.
type Server struct {
	analyze  commands.Analyze
	commit   commands.Commit
	registry *prom.Registry
}

// NewServer creates a new Server.
func NewServer(analyze commands.Analyze, commit commands.Commit, registry *prom.Registry) *Server {
	return &Server{
		analyze:  analyze,
		commit:   commit,
		registry: registry,
	}
}

// Handler builds the router. Settings are shared read-only by all requests.
func (it *Server) Handler(settings *entities.Settings) http.Handler {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(mux.CORSMethodMiddleware(router))
	router.Use(corsMiddleware)

	router.HandleFunc("/analyze", it.handleAnalyze(settings)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/commit", it.handleCommit(settings)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promRepo.HTTPHandler(it.registry)).Methods(http.MethodGet)

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (it *Server) ListenAndServe(ctx context.Context, settings *entities.Settings) error {
	srv := &http.Server{
		Addr:              settings.Server.Address,
		Handler:           it.Handler(settings),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Error shutting down the HTTP server: %v", err)
		}
	}()

	logger.Infof("Listening on %s", settings.Server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve on %s: %w", settings.Server.Address, err)
	}
	return nil
}
