package service

import (
	"context"
	"log/slog"

	registrymetrics "socialregistry/internal/registry/metrics"
	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
	"socialregistry/pkg/requestcontext"
)

const eventGroupRegistered = "group_registered"

// Service orchestrates group registration and group queries.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *registrymetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) logAudit(ctx context.Context, event string, attrs ...any) {
	if s.logger == nil {
		return
	}
	args := append(attrs, "event", event, "log_type", "audit")
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if userID := requestcontext.UserID(ctx); userID != "" {
		args = append(args, "user_id", userID)
	}
	s.logger.InfoContext(ctx, event, args...)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	s.logger.WarnContext(ctx, msg, attrs...)
}

// runStats collects counters during a transaction. They are published only
// after commit so a rolled back registration leaves metrics untouched.
type runStats struct {
	individuals int
	linked      int
	skipped     int
	references  []resolvedReference
}

type resolvedReference struct {
	kind    models.ReferenceKind
	created bool
}

func (s *Service) publish(st *runStats) {
	if s.metrics == nil || st == nil {
		return
	}
	for range st.individuals {
		s.metrics.IncrementIndividualsCreated()
	}
	for range st.linked {
		s.metrics.IncrementRelationshipsLinked()
	}
	for range st.skipped {
		s.metrics.IncrementRelationshipsSkipped()
	}
	for _, ref := range st.references {
		s.metrics.IncrementReferenceResolved(ref.kind.String(), ref.created)
	}
}
