// Package server exposes the catalog over a small JSON API.
package server // import "github.com/jebrand/jebman/internal/server"

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jebrand/jebman/internal/catalog"
	"github.com/jebrand/jebman/internal/config"
	"github.com/jebrand/jebman/internal/log"
	"github.com/jebrand/jebman/internal/store"
	"github.com/jebrand/jebman/internal/version"
	"go.uber.org/zap"
)

// StartServer starts the HTTP server in the background and returns it so
// the caller can shut it down.
func StartServer(ctx context.Context, opts *config.Options, s *store.Store, ctrl *catalog.Controller) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: setupHandler(s, ctrl),
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	return server
}

func setupHandler(s *store.Store, ctrl *catalog.Controller) http.Handler {
	router := mux.NewRouter()

	h := &handler{ctrl: ctrl}
	router.HandleFunc("/books", h.listBooks).Methods(http.MethodGet).Name("listBooks")
	router.HandleFunc("/books/{id:[0-9]+}", h.getBook).Methods(http.MethodGet).Name("getBook")
	router.HandleFunc("/books/{id:[0-9]+}", h.removeBook).Methods(http.MethodDelete).Name("removeBook")
	router.HandleFunc("/books/{id:[0-9]+}/tags", h.tagBook).Methods(http.MethodPost).Name("tagBook")

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
