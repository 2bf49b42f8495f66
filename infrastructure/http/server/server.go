package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/invenra/invenra/infrastructure/config"
	"github.com/invenra/invenra/infrastructure/http/handler"
	"github.com/invenra/invenra/infrastructure/http/middleware"
)

type Server struct {
	server *http.Server
}

type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Supplier *handler.SupplierHandler
}

// New assembles the router: resource routes, auth routes behind the rate
// limiter, health and metrics endpoints, and the outer middleware chain.
func New(cfg *config.Config, handlers Handlers, rateLimit *middleware.RateLimitMiddleware) *Server {
	router := mux.NewRouter()

	handlers.Auth.RegisterRoutes(router, rateLimit.RateLimit)
	handlers.Product.RegisterRoutes(router)
	handlers.Customer.RegisterRoutes(router)
	handlers.Supplier.RegisterRoutes(router)

	router.Handle("/metrics", middleware.MetricsHandler()).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"healthy"}`)
	}).Methods(http.MethodGet)

	var h http.Handler = router
	h = middleware.Instrument(h)
	h = middleware.CorrelationID(h)
	if cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0 {
		h = middleware.CORS(h, cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler:      h,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
