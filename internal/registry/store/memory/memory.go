package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
)

type referenceKey struct {
	kind models.ReferenceKind
	name string
}

// state is the full dataset. Transactions work on a clone and swap it in on
// success.
type state struct {
	nextID        int64
	references    map[models.ReferenceID]models.Reference
	referenceKeys map[referenceKey]models.ReferenceID
	registrants   map[models.RegistrantID]*models.Registrant
	relationships []models.Relationship
	memberships   []models.Membership
}

func newState() *state {
	return &state{
		references:    make(map[models.ReferenceID]models.Reference),
		referenceKeys: make(map[referenceKey]models.ReferenceID),
		registrants:   make(map[models.RegistrantID]*models.Registrant),
	}
}

func (s *state) clone() *state {
	c := &state{
		nextID:        s.nextID,
		references:    maps.Clone(s.references),
		referenceKeys: maps.Clone(s.referenceKeys),
		registrants:   make(map[models.RegistrantID]*models.Registrant, len(s.registrants)),
		relationships: slices.Clone(s.relationships),
		memberships:   slices.Clone(s.memberships),
	}
	// Stored registrants are never mutated in place, sharing pointers is safe.
	maps.Copy(c.registrants, s.registrants)
	return c
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// InMemory is a Store backed by maps guarded by a single mutex.
type InMemory struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{state: newState(), now: time.Now}
}

func (m *InMemory) ResolveReference(ctx context.Context, kind models.ReferenceKind, name string) (models.ReferenceID, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return resolveReference(m.state, kind, name)
}

func (m *InMemory) FindReferences(ctx context.Context, ids []models.ReferenceID) (map[models.ReferenceID]models.Reference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return findReferences(m.state, ids), nil
}

func (m *InMemory) CreateRegistrant(ctx context.Context, r *models.Registrant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return createRegistrant(m.state, r, m.now())
}

func (m *InMemory) FindRegistrant(ctx context.Context, id models.RegistrantID) (*models.Registrant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return findRegistrant(m.state, id)
}

func (m *InMemory) RegistrantExists(ctx context.Context, id models.RegistrantID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.state.registrants[id]
	return ok, nil
}

func (m *InMemory) SearchGroups(ctx context.Context, filter models.GroupSearch) ([]*models.Registrant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return searchGroups(m.state, filter), nil
}

func (m *InMemory) CreateRelationship(ctx context.Context, rel *models.Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return createRelationship(m.state, rel, m.now())
}

func (m *InMemory) ListRelationships(ctx context.Context, id models.RegistrantID, dir models.Direction) ([]models.Relationship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return listRelationships(m.state, id, dir), nil
}

func (m *InMemory) CreateMembership(ctx context.Context, ms *models.Membership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return createMembership(m.state, ms, m.now())
}

func (m *InMemory) ListMemberships(ctx context.Context, groupID models.RegistrantID) ([]models.Membership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return listMemberships(m.state, groupID), nil
}

// RunInTx holds the write lock for the whole callback, so transactions are
// serialized.
func (m *InMemory) RunInTx(ctx context.Context, fn func(tx store.Store) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &txStore{state: m.state.clone(), now: m.now}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	m.state = tx.state
	return nil
}

func (m *InMemory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// txStore is the view handed to RunInTx callbacks. The parent lock is held,
// so it needs none of its own.
type txStore struct {
	state *state
	now   func() time.Time
}

func (t *txStore) ResolveReference(ctx context.Context, kind models.ReferenceKind, name string) (models.ReferenceID, bool, error) {
	return resolveReference(t.state, kind, name)
}

func (t *txStore) FindReferences(ctx context.Context, ids []models.ReferenceID) (map[models.ReferenceID]models.Reference, error) {
	return findReferences(t.state, ids), nil
}

func (t *txStore) CreateRegistrant(ctx context.Context, r *models.Registrant) error {
	return createRegistrant(t.state, r, t.now())
}

func (t *txStore) FindRegistrant(ctx context.Context, id models.RegistrantID) (*models.Registrant, error) {
	return findRegistrant(t.state, id)
}

func (t *txStore) RegistrantExists(ctx context.Context, id models.RegistrantID) (bool, error) {
	_, ok := t.state.registrants[id]
	return ok, nil
}

func (t *txStore) SearchGroups(ctx context.Context, filter models.GroupSearch) ([]*models.Registrant, error) {
	return searchGroups(t.state, filter), nil
}

func (t *txStore) CreateRelationship(ctx context.Context, rel *models.Relationship) error {
	return createRelationship(t.state, rel, t.now())
}

func (t *txStore) ListRelationships(ctx context.Context, id models.RegistrantID, dir models.Direction) ([]models.Relationship, error) {
	return listRelationships(t.state, id, dir), nil
}

func (t *txStore) CreateMembership(ctx context.Context, ms *models.Membership) error {
	return createMembership(t.state, ms, t.now())
}

func (t *txStore) ListMemberships(ctx context.Context, groupID models.RegistrantID) ([]models.Membership, error) {
	return listMemberships(t.state, groupID), nil
}

// RunInTx nests by running fn against the same transaction.
func (t *txStore) RunInTx(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(t)
}

func (t *txStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func resolveReference(s *state, kind models.ReferenceKind, name string) (models.ReferenceID, bool, error) {
	key := referenceKey{kind: kind, name: name}
	if id, ok := s.referenceKeys[key]; ok {
		return id, false, nil
	}
	id := models.ReferenceID(s.id())
	s.references[id] = models.Reference{ID: id, Kind: kind, Name: name}
	s.referenceKeys[key] = id
	return id, true, nil
}

func findReferences(s *state, ids []models.ReferenceID) map[models.ReferenceID]models.Reference {
	out := make(map[models.ReferenceID]models.Reference, len(ids))
	for _, id := range ids {
		if ref, ok := s.references[id]; ok {
			out[id] = ref
		}
	}
	return out
}

func createRegistrant(s *state, r *models.Registrant, now time.Time) error {
	if r.KindID != nil {
		if _, ok := s.references[*r.KindID]; !ok {
			return fmt.Errorf("group kind %d: %w", *r.KindID, store.ErrNotFound)
		}
	}
	r.ID = models.RegistrantID(s.id())
	r.CreatedAt = now
	for i := range r.Identifiers {
		r.Identifiers[i].ID = s.id()
		r.Identifiers[i].RegistrantID = r.ID
	}
	for i := range r.PhoneNumbers {
		r.PhoneNumbers[i].ID = s.id()
		r.PhoneNumbers[i].RegistrantID = r.ID
	}
	s.registrants[r.ID] = copyRegistrant(r)
	return nil
}

func findRegistrant(s *state, id models.RegistrantID) (*models.Registrant, error) {
	r, ok := s.registrants[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyRegistrant(r), nil
}

// searchGroups matches name as a case-sensitive substring, like the SQL
// store's escaped LIKE.
func searchGroups(s *state, filter models.GroupSearch) []*models.Registrant {
	out := make([]*models.Registrant, 0)
	for _, r := range s.registrants {
		if !r.IsGroup {
			continue
		}
		if filter.ID != 0 && r.ID != filter.ID {
			continue
		}
		if filter.Name != "" && !strings.Contains(r.Name, filter.Name) {
			continue
		}
		out = append(out, copyRegistrant(r))
	}
	slices.SortFunc(out, func(a, b *models.Registrant) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func createRelationship(s *state, rel *models.Relationship, now time.Time) error {
	if _, ok := s.registrants[rel.SourceID]; !ok {
		return fmt.Errorf("relationship source %d: %w", rel.SourceID, store.ErrNotFound)
	}
	if _, ok := s.registrants[rel.DestinationID]; !ok {
		return fmt.Errorf("relationship destination %d: %w", rel.DestinationID, store.ErrNotFound)
	}
	rel.ID = s.id()
	rel.CreatedAt = now
	s.relationships = append(s.relationships, *rel)
	return nil
}

func listRelationships(s *state, id models.RegistrantID, dir models.Direction) []models.Relationship {
	var out []models.Relationship
	for _, rel := range s.relationships {
		if (dir == models.IntoSubject && rel.DestinationID == id) ||
			(dir == models.FromSubject && rel.SourceID == id) {
			out = append(out, rel)
		}
	}
	return out
}

func createMembership(s *state, ms *models.Membership, now time.Time) error {
	group, ok := s.registrants[ms.GroupID]
	if !ok || !group.IsGroup {
		return fmt.Errorf("membership group %d: %w", ms.GroupID, store.ErrNotFound)
	}
	if _, ok := s.registrants[ms.IndividualID]; !ok {
		return fmt.Errorf("membership individual %d: %w", ms.IndividualID, store.ErrNotFound)
	}
	ms.ID = s.id()
	ms.CreatedAt = now
	stored := *ms
	stored.KindIDs = slices.Clone(ms.KindIDs)
	s.memberships = append(s.memberships, stored)
	return nil
}

func listMemberships(s *state, groupID models.RegistrantID) []models.Membership {
	var out []models.Membership
	for _, ms := range s.memberships {
		if ms.GroupID == groupID {
			ms.KindIDs = slices.Clone(ms.KindIDs)
			out = append(out, ms)
		}
	}
	return out
}

func copyRegistrant(r *models.Registrant) *models.Registrant {
	c := *r
	c.Identifiers = slices.Clone(r.Identifiers)
	c.PhoneNumbers = slices.Clone(r.PhoneNumbers)
	return &c
}
