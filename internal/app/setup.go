// Package app contains the application setup for the storefront tool
// server.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/packlane/storefront/internal/cart"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/config"
	"github.com/packlane/storefront/internal/dispatch"
	"github.com/packlane/storefront/internal/transport/rest"
	"github.com/packlane/storefront/pkg/server"
)

type Dependencies struct {
	Dispatcher *dispatch.Dispatcher
	Logger     *slog.Logger
}

// SetupDependencies loads the catalog seed and builds the shared cart and
// the dispatcher on top of it.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := catalog.LoadSeed(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	seedSource := cfg.Catalog.File
	if seedSource == "" {
		seedSource = "embedded"
	}
	logger.Info("Catalog loaded", "products", store.Len(), "source", seedSource)

	return &Dependencies{
		Dispatcher: dispatch.NewDispatcher(store, cart.New(), logger),
		Logger:     logger,
	}, nil
}

// SetupHttpHandler initializes the router and routes for the tool server.
// Exported separately so handler tests can drive the full middleware
// stack without a listening server.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger, server.CORSOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxAge:         cfg.CORS.MaxAge,
	})
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the tool server.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	toolHandler := rest.NewHandler(deps.Dispatcher, deps.Logger)
	toolHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the tool
// server application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
