package service

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"socialregistry/internal/platform/tracing"
	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
	dErrors "socialregistry/pkg/domain-errors"
)

// resolver turns reference names into ids, creating missing references.
type resolver struct {
	store store.Store
	stats *runStats
}

func (r *resolver) resolve(ctx context.Context, kind models.ReferenceKind, name string) (models.ReferenceID, error) {
	if !kind.IsValid() {
		return 0, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unknown reference kind %q", kind))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s name is required", kind))
	}

	ctx, span := tracing.StartSpan(ctx, "registry.resolve_reference",
		attribute.String("reference.kind", kind.String()))
	defer span.End()

	id, created, err := r.store.ResolveReference(ctx, kind, name)
	if err != nil {
		tracing.RecordError(span, err)
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to resolve %s", kind))
	}
	span.SetAttributes(attribute.Bool("reference.created", created))
	r.stats.references = append(r.stats.references, resolvedReference{kind: kind, created: created})
	return id, nil
}

// ResolveReference returns the id of the named reference of the given kind,
// creating it when it does not exist yet.
func (s *Service) ResolveReference(ctx context.Context, kind models.ReferenceKind, name string) (models.ReferenceID, error) {
	stats := &runStats{}
	r := &resolver{store: s.store, stats: stats}
	id, err := r.resolve(ctx, kind, name)
	if err != nil {
		return 0, err
	}
	s.publish(stats)
	return id, nil
}
