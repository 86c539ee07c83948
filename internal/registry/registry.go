// Package registry wires the group registry module: store selection, service
// and HTTP handler.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"socialregistry/internal/platform/config"
	"socialregistry/internal/platform/database"
	"socialregistry/internal/platform/metrics"
	"socialregistry/internal/platform/middleware"
	"socialregistry/internal/registry/handler"
	registrymetrics "socialregistry/internal/registry/metrics"
	"socialregistry/internal/registry/service"
	"socialregistry/internal/registry/store"
	"socialregistry/internal/registry/store/memory"
	"socialregistry/internal/registry/store/postgres"
)

// Service exposes group registration and queries.
type Service = service.Service

// Handler wires HTTP endpoints to the registry service.
type Handler = handler.Handler

// OpenStore builds the configured store. The returned close function releases
// the database pool and is never nil.
func OpenStore(ctx context.Context, cfg config.Server, logger *slog.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store {
	case config.StoreMemory:
		logger.Info("using in-memory registry store")
		return memory.NewInMemory(), noop, nil
	case config.StorePostgres:
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(cfg.Database.URL, logger); err != nil {
				return nil, noop, err
			}
		}
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using postgres registry store")
		return postgres.New(db), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}

// NewService constructs the registry service with its metrics registered on reg.
func NewService(st store.Store, logger *slog.Logger, reg prometheus.Registerer) *Service {
	return service.New(st,
		service.WithLogger(logger),
		service.WithMetrics(registrymetrics.New(reg)),
	)
}

// NewHandler constructs the HTTP handler for the group routes.
func NewHandler(s *Service, logger *slog.Logger, m *metrics.Metrics, validator middleware.JWTValidator, cfg config.Server) *Handler {
	return handler.New(s, logger, m, validator, handler.WithRequestTimeout(cfg.RequestTimeout))
}
