// Package store declares the persistence port of the registry and the
// behaviour shared by its implementations.
package store

import (
	"context"

	"socialregistry/internal/registry/models"
	"socialregistry/pkg/platform/sentinel"
)

// ErrNotFound is returned when a registrant or reference does not exist.
var ErrNotFound = sentinel.ErrNotFound

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

// Store persists registrants, references, relationships and memberships.
//
// Implementations assign ids on create and write them back into the passed
// value, including the ids of nested identifiers and phone numbers.
type Store interface {
	// ResolveReference returns the id of the (kind, name) reference,
	// creating it atomically when absent. created reports an insert.
	ResolveReference(ctx context.Context, kind models.ReferenceKind, name string) (id models.ReferenceID, created bool, err error)
	FindReferences(ctx context.Context, ids []models.ReferenceID) (map[models.ReferenceID]models.Reference, error)

	CreateRegistrant(ctx context.Context, r *models.Registrant) error
	FindRegistrant(ctx context.Context, id models.RegistrantID) (*models.Registrant, error)
	RegistrantExists(ctx context.Context, id models.RegistrantID) (bool, error)
	SearchGroups(ctx context.Context, filter models.GroupSearch) ([]*models.Registrant, error)

	CreateRelationship(ctx context.Context, rel *models.Relationship) error
	// ListRelationships returns edges with id at the end chosen by dir:
	// IntoSubject lists edges whose destination is id, FromSubject those
	// whose source is id.
	ListRelationships(ctx context.Context, id models.RegistrantID, dir models.Direction) ([]models.Relationship, error)

	CreateMembership(ctx context.Context, m *models.Membership) error
	ListMemberships(ctx context.Context, groupID models.RegistrantID) ([]models.Membership, error)

	// RunInTx runs fn against a transactional view of the store. Returning
	// an error from fn discards every write made through tx.
	RunInTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
