package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
	"socialregistry/pkg/platform/sentinel"
)

type RegistryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *RegistryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestRegistryStoreSuite(t *testing.T) {
	suite.Run(t, new(RegistryStoreSuite))
}

func (s *RegistryStoreSuite) createGroup(name string) *models.Registrant {
	g := &models.Registrant{Name: name, IsGroup: true}
	s.Require().NoError(s.store.CreateRegistrant(s.ctx, g))
	return g
}

func (s *RegistryStoreSuite) createIndividual(name string) *models.Registrant {
	r := &models.Registrant{Name: name}
	s.Require().NoError(s.store.CreateRegistrant(s.ctx, r))
	return r
}

func (s *RegistryStoreSuite) TestResolveReference() {
	s.Run("creates once per kind and name", func() {
		first, created, err := s.store.ResolveReference(s.ctx, models.ReferenceIDType, "Passport")
		s.Require().NoError(err)
		s.True(created)

		again, created, err := s.store.ResolveReference(s.ctx, models.ReferenceIDType, "Passport")
		s.Require().NoError(err)
		s.False(created)
		s.Equal(first, again)
	})

	s.Run("same name under another kind is a different reference", func() {
		idType, _, err := s.store.ResolveReference(s.ctx, models.ReferenceIDType, "Head")
		s.Require().NoError(err)
		kind, _, err := s.store.ResolveReference(s.ctx, models.ReferenceMembershipKind, "Head")
		s.Require().NoError(err)
		s.NotEqual(idType, kind)

		refs, err := s.store.FindReferences(s.ctx, []models.ReferenceID{idType, kind, 9999})
		s.Require().NoError(err)
		s.Len(refs, 2)
		s.Equal(models.ReferenceMembershipKind, refs[kind].Kind)
	})

	s.Run("concurrent resolution yields a single reference", func() {
		var wg sync.WaitGroup
		ids := make([]models.ReferenceID, 20)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id, _, err := s.store.ResolveReference(s.ctx, models.ReferenceRelationType, "Spouse")
				s.NoError(err)
				ids[i] = id
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			s.Equal(ids[0], id)
		}
	})
}

func (s *RegistryStoreSuite) TestRegistrants() {
	s.Run("assigns ids to the registrant and its nested records", func() {
		typeID, _, err := s.store.ResolveReference(s.ctx, models.ReferenceIDType, "National ID")
		s.Require().NoError(err)
		r := &models.Registrant{
			Name:         "DOE, JANE",
			Identifiers:  []models.Identifier{{IDTypeID: typeID, Value: "A-1"}},
			PhoneNumbers: []models.PhoneNumber{{PhoneNo: "+1555"}, {PhoneNo: "+1666"}},
		}
		s.Require().NoError(s.store.CreateRegistrant(s.ctx, r))
		s.NotZero(r.ID)
		s.False(r.CreatedAt.IsZero())

		found, err := s.store.FindRegistrant(s.ctx, r.ID)
		s.Require().NoError(err)
		s.Equal("DOE, JANE", found.Name)
		s.Require().Len(found.Identifiers, 1)
		s.Equal(r.ID, found.Identifiers[0].RegistrantID)
		s.Require().Len(found.PhoneNumbers, 2)
		s.Equal("+1555", found.PhoneNumbers[0].PhoneNo)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindRegistrant(s.ctx, 424242)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		exists, err := s.store.RegistrantExists(s.ctx, 424242)
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("returned registrants are copies", func() {
		r := s.createIndividual("Original")
		found, err := s.store.FindRegistrant(s.ctx, r.ID)
		s.Require().NoError(err)
		found.Name = "Changed"

		again, err := s.store.FindRegistrant(s.ctx, r.ID)
		s.Require().NoError(err)
		s.Equal("Original", again.Name)
	})
}

func (s *RegistryStoreSuite) TestSearchGroups() {
	north := s.createGroup("North Household")
	south := s.createGroup("South Household")
	s.createIndividual("North Walker")

	s.Run("no filter lists every group", func() {
		groups, err := s.store.SearchGroups(s.ctx, models.GroupSearch{})
		s.Require().NoError(err)
		s.Len(groups, 2)
		s.Equal(north.ID, groups[0].ID)
	})

	s.Run("name filter is a case-sensitive substring", func() {
		groups, err := s.store.SearchGroups(s.ctx, models.GroupSearch{Name: "North"})
		s.Require().NoError(err)
		s.Require().Len(groups, 1)
		s.Equal(north.ID, groups[0].ID)

		groups, err = s.store.SearchGroups(s.ctx, models.GroupSearch{Name: "north"})
		s.Require().NoError(err)
		s.Empty(groups)
	})

	s.Run("filters combine", func() {
		groups, err := s.store.SearchGroups(s.ctx, models.GroupSearch{Name: "Household", ID: south.ID})
		s.Require().NoError(err)
		s.Require().Len(groups, 1)
		s.Equal(south.ID, groups[0].ID)

		groups, err = s.store.SearchGroups(s.ctx, models.GroupSearch{Name: "North", ID: south.ID})
		s.Require().NoError(err)
		s.Empty(groups)
	})
}

func (s *RegistryStoreSuite) TestRelationshipsAndMemberships() {
	group := s.createGroup("Household")
	a := s.createIndividual("A")
	b := s.createIndividual("B")
	rel, _, err := s.store.ResolveReference(s.ctx, models.ReferenceRelationType, "Parent")
	s.Require().NoError(err)

	edge := models.Relationship{SourceID: a.ID, DestinationID: b.ID, RelationID: rel}
	s.Require().NoError(s.store.CreateRelationship(s.ctx, &edge))
	s.NotZero(edge.ID)

	into, err := s.store.ListRelationships(s.ctx, b.ID, models.IntoSubject)
	s.Require().NoError(err)
	s.Require().Len(into, 1)
	s.Equal(a.ID, into[0].SourceID)

	from, err := s.store.ListRelationships(s.ctx, b.ID, models.FromSubject)
	s.Require().NoError(err)
	s.Empty(from)

	s.Run("edges need both ends to exist", func() {
		bad := models.Relationship{SourceID: a.ID, DestinationID: 999999, RelationID: rel}
		s.ErrorIs(s.store.CreateRelationship(s.ctx, &bad), store.ErrNotFound)
	})

	s.Run("memberships are listed per group", func() {
		kind, _, err := s.store.ResolveReference(s.ctx, models.ReferenceMembershipKind, "Head")
		s.Require().NoError(err)
		m := models.Membership{GroupID: group.ID, IndividualID: a.ID, KindIDs: []models.ReferenceID{kind}}
		s.Require().NoError(s.store.CreateMembership(s.ctx, &m))

		list, err := s.store.ListMemberships(s.ctx, group.ID)
		s.Require().NoError(err)
		s.Require().Len(list, 1)
		s.Equal([]models.ReferenceID{kind}, list[0].KindIDs)
	})

	s.Run("membership group must be a group", func() {
		m := models.Membership{GroupID: a.ID, IndividualID: b.ID}
		s.ErrorIs(s.store.CreateMembership(s.ctx, &m), store.ErrNotFound)
	})
}

func (s *RegistryStoreSuite) TestRunInTx() {
	s.Run("commits writes on success", func() {
		var id models.RegistrantID
		err := s.store.RunInTx(s.ctx, func(tx store.Store) error {
			r := &models.Registrant{Name: "Committed", IsGroup: true}
			if err := tx.CreateRegistrant(s.ctx, r); err != nil {
				return err
			}
			id = r.ID
			return nil
		})
		s.Require().NoError(err)
		_, err = s.store.FindRegistrant(s.ctx, id)
		s.NoError(err)
	})

	s.Run("discards every write on error", func() {
		boom := errors.New("boom")
		var id models.RegistrantID
		err := s.store.RunInTx(s.ctx, func(tx store.Store) error {
			if _, _, err := tx.ResolveReference(s.ctx, models.ReferenceGroupKind, "Rolled Back"); err != nil {
				return err
			}
			r := &models.Registrant{Name: "Discarded", IsGroup: true}
			if err := tx.CreateRegistrant(s.ctx, r); err != nil {
				return err
			}
			id = r.ID

			exists, err := tx.RegistrantExists(s.ctx, id)
			s.Require().NoError(err)
			s.True(exists, "writes are visible inside the transaction")
			return boom
		})
		s.Require().ErrorIs(err, boom)

		_, err = s.store.FindRegistrant(s.ctx, id)
		s.ErrorIs(err, store.ErrNotFound)

		_, created, err := s.store.ResolveReference(s.ctx, models.ReferenceGroupKind, "Rolled Back")
		s.Require().NoError(err)
		s.True(created)
	})

	s.Run("refuses a cancelled context", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		called := false
		err := s.store.RunInTx(ctx, func(store.Store) error {
			called = true
			return nil
		})
		s.ErrorIs(err, context.Canceled)
		s.False(called)
	})
}
