// Package app contains the application setup for the inventory service.
package app

import (
	"log/slog"
	"net/http"

	"inventory-service/internal/config"
	"inventory-service/internal/service"
	"inventory-service/internal/store"
	"inventory-service/internal/transport/rest"
	"inventory-service/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

// SetupDependencies wires the service with its stores. All references are
// explicit; nothing is looked up ambiently.
func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	pService := service.NewService(
		store.NewPgProductStore(dbPool),
		store.NewPgCategoryStore(dbPool),
		logger,
	)

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}
}

// SetupHTTPHandler initializes the HTTP routes for the inventory service.
// Also used by tests to mount the full middleware stack without a listener.
func SetupHTTPHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the inventory service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHTTPServer creates and configures an HTTP server for the inventory service.
func SetupHTTPServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHTTPHandler(deps)

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
