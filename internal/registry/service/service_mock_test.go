package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
	"socialregistry/internal/registry/store/mocks"
	dErrors "socialregistry/pkg/domain-errors"
)

func newMockedService(t *testing.T) (*Service, *mocks.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	st := mocks.NewMockStore(ctrl)
	return New(st), st
}

// passThroughTx runs the callback against the mock itself.
func passThroughTx(st *mocks.MockStore) {
	st.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(store.Store) error) error {
			return fn(st)
		})
}

func TestRegisterGroupStoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("individual insert failure is internal and stops the run", func(t *testing.T) {
		svc, st := newMockedService(t)
		passThroughTx(st)
		st.EXPECT().CreateRegistrant(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := svc.RegisterGroup(ctx, models.GroupInfo{
			Name:    "Household",
			Members: []models.MemberInfo{{Individual: models.IndividualInfo{Name: "A"}}},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("reference failure surfaces as internal", func(t *testing.T) {
		svc, st := newMockedService(t)
		passThroughTx(st)
		st.EXPECT().ResolveReference(gomock.Any(), models.ReferenceGroupKind, "Household").
			Return(models.ReferenceID(0), false, errors.New("deadlock detected"))

		_, err := svc.RegisterGroup(ctx, models.GroupInfo{Name: "G", Kind: "Household"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("counterpart lookup failure is not treated as missing", func(t *testing.T) {
		svc, st := newMockedService(t)
		passThroughTx(st)
		st.EXPECT().CreateRegistrant(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *models.Registrant) error {
				r.ID = 7
				return nil
			})
		st.EXPECT().RegistrantExists(gomock.Any(), models.RegistrantID(3)).Return(false, errors.New("timeout"))

		_, err := svc.RegisterGroup(ctx, models.GroupInfo{
			Name:           "G",
			Relationships1: []models.RelationshipInfo{{Registrant: 3, Relation: "Parent"}},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("membership insert failure carries the staged membership", func(t *testing.T) {
		svc, st := newMockedService(t)
		passThroughTx(st)
		var nextID models.RegistrantID
		st.EXPECT().CreateRegistrant(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, r *models.Registrant) error {
				nextID++
				r.ID = nextID
				return nil
			})
		st.EXPECT().CreateMembership(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m *models.Membership) error {
				assert.Equal(t, models.RegistrantID(2), m.GroupID)
				assert.Equal(t, models.RegistrantID(1), m.IndividualID)
				return errors.New("unique violation")
			})

		_, err := svc.RegisterGroup(ctx, models.GroupInfo{
			Name:    "Household",
			Members: []models.MemberInfo{{Individual: models.IndividualInfo{Name: "A"}}},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("non positive counterpart ids are skipped without a lookup", func(t *testing.T) {
		svc, st := newMockedService(t)
		passThroughTx(st)
		st.EXPECT().CreateRegistrant(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *models.Registrant) error {
				r.ID = 7
				return nil
			})
		st.EXPECT().FindRegistrant(gomock.Any(), models.RegistrantID(7)).
			Return(&models.Registrant{ID: 7, Name: "G", IsGroup: true}, nil)
		st.EXPECT().ListRelationships(gomock.Any(), models.RegistrantID(7), gomock.Any()).Times(2).Return(nil, nil)
		st.EXPECT().ListMemberships(gomock.Any(), models.RegistrantID(7)).Return(nil, nil)
		st.EXPECT().FindReferences(gomock.Any(), gomock.Any()).Return(map[models.ReferenceID]models.Reference{}, nil)

		view, err := svc.RegisterGroup(ctx, models.GroupInfo{
			Name:           "G",
			Relationships1: []models.RelationshipInfo{{Registrant: 0, Relation: "Parent"}},
			Relationships2: []models.RelationshipInfo{{Registrant: -4, Relation: "Child"}},
		})
		require.NoError(t, err)
		assert.Empty(t, view.Relationships1)
		assert.Empty(t, view.Relationships2)
	})

	t.Run("commit failure is wrapped", func(t *testing.T) {
		svc, st := newMockedService(t)
		st.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Return(errors.New("commit failed"))

		_, err := svc.RegisterGroup(ctx, models.GroupInfo{Name: "G"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("cancelled context maps to timeout", func(t *testing.T) {
		svc, st := newMockedService(t)
		st.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

		_, err := svc.RegisterGroup(ctx, models.GroupInfo{Name: "G"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func TestQueryStoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("get group lookup failure is internal", func(t *testing.T) {
		svc, st := newMockedService(t)
		st.EXPECT().FindRegistrant(gomock.Any(), models.RegistrantID(5)).Return(nil, errors.New("broken pipe"))

		_, err := svc.GetGroup(ctx, 5)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("get group translates store not found", func(t *testing.T) {
		svc, st := newMockedService(t)
		st.EXPECT().FindRegistrant(gomock.Any(), models.RegistrantID(5)).Return(nil, store.ErrNotFound)

		_, err := svc.GetGroup(ctx, 5)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("search failure is internal", func(t *testing.T) {
		svc, st := newMockedService(t)
		st.EXPECT().SearchGroups(gomock.Any(), models.GroupSearch{Name: "x"}).Return(nil, errors.New("boom"))

		_, err := svc.SearchGroups(ctx, models.GroupSearch{Name: "x"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
