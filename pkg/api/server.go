package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/savestate/pkg/api/handlers"
	"github.com/cbodonnell/savestate/pkg/api/middleware"
	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/repositories"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port       int
	TLS        *TLSConfig
	Repository repositories.Repository
	Host       handlers.Enqueuer
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts.Repository, opts.Host),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter routes the slot endpoints.
func NewRouter(repository repositories.Repository, host handlers.Enqueuer) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging, middleware.CORS)

	r.HandleFunc("/slots", handlers.HandleListSlots(repository)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/slots", handlers.HandleSaveSlot(host)).Methods(http.MethodPost)
	r.HandleFunc("/slots/{slotID}", handlers.HandleGetSlot(repository)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/slots/{slotID}", handlers.HandleDeleteSlot(repository)).Methods(http.MethodDelete)
	r.HandleFunc("/slots/{slotID}/load", handlers.HandleLoadSlot(repository, host)).Methods(http.MethodPost, http.MethodOptions)

	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
