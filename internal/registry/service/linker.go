package service

import (
	"context"
	"fmt"

	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
	dErrors "socialregistry/pkg/domain-errors"
)

// linker writes relationship edges for a freshly created registrant.
type linker struct {
	store    store.Store
	resolver *resolver
	stats    *runStats
	warn     func(ctx context.Context, msg string, attrs ...any)
}

// link writes one edge per entry. Entries naming a registrant that does not
// exist, including non-positive ids, are skipped without failing the
// registration.
func (l *linker) link(ctx context.Context, entries []models.RelationshipInfo, subject models.RegistrantID, dir models.Direction) error {
	for _, entry := range entries {
		exists := false
		if entry.Registrant > 0 {
			var err error
			if exists, err = l.store.RegistrantExists(ctx, entry.Registrant); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load relationship counterpart")
			}
		}
		if !exists {
			l.stats.skipped++
			l.warn(ctx, "relationship counterpart not found, entry skipped",
				"subject_id", int64(subject),
				"counterpart_id", int64(entry.Registrant),
				"relation", entry.Relation,
				"direction", dir.String())
			continue
		}

		relationID, err := l.resolver.resolve(ctx, models.ReferenceRelationType, entry.Relation)
		if err != nil {
			return err
		}

		edge := dir.Edge(subject, entry.Registrant, relationID)
		if err := l.store.CreateRelationship(ctx, &edge); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to create relationship %s", dir))
		}
		l.stats.linked++
	}
	return nil
}
