package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"socialregistry/internal/platform/tracing"
	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
	dErrors "socialregistry/pkg/domain-errors"
	"socialregistry/pkg/requestcontext"
)

// GetGroup returns the full projection of a group. Ids that do not exist or
// name an individual are reported as not found.
func (s *Service) GetGroup(ctx context.Context, id models.RegistrantID) (*models.GroupView, error) {
	ctx, span := tracing.StartSpan(ctx, "registry.get_group", attribute.Int64("group.id", int64(id)))
	defer span.End()

	view, err := loadGroupView(ctx, s.store, id, requestcontext.Now(ctx))
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return view, nil
}

// SearchGroups lists groups matching every filter that is set.
func (s *Service) SearchGroups(ctx context.Context, filter models.GroupSearch) ([]*models.GroupSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "registry.search_groups")
	defer span.End()

	groups, err := s.store.SearchGroups(ctx, filter)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search groups")
	}

	out := make([]*models.GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, &models.GroupSummary{
			ID:               g.ID,
			Name:             g.Name,
			RegistrationDate: g.RegistrationDate,
			Email:            g.Email,
			Address:          g.Address,
		})
	}
	span.SetAttributes(attribute.Int("search.results", len(out)))
	return out, nil
}

type loadedMember struct {
	membership models.Membership
	individual *models.Registrant
	into       []models.Relationship
	from       []models.Relationship
}

// groupProjection gathers everything a group view needs so reference names
// can be fetched in one round trip.
type groupProjection struct {
	group   *models.Registrant
	into    []models.Relationship
	from    []models.Relationship
	members []loadedMember
	refIDs  map[models.ReferenceID]struct{}
}

func loadGroupView(ctx context.Context, st store.Store, id models.RegistrantID, now time.Time) (*models.GroupView, error) {
	group, err := st.FindRegistrant(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "group not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load group")
	}
	if !group.IsGroup {
		return nil, dErrors.New(dErrors.CodeNotFound, "group not found")
	}

	p := &groupProjection{group: group, refIDs: make(map[models.ReferenceID]struct{})}
	if group.KindID != nil {
		p.addRef(*group.KindID)
	}
	p.addIdentifierRefs(group.Identifiers)
	if p.into, p.from, err = p.loadRelationships(ctx, st, group.ID); err != nil {
		return nil, err
	}

	memberships, err := st.ListMemberships(ctx, group.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load memberships")
	}
	for _, m := range memberships {
		individual, err := st.FindRegistrant(ctx, m.IndividualID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load group member")
		}
		lm := loadedMember{membership: m, individual: individual}
		if lm.into, lm.from, err = p.loadRelationships(ctx, st, individual.ID); err != nil {
			return nil, err
		}
		p.addIdentifierRefs(individual.Identifiers)
		for _, kindID := range m.KindIDs {
			p.addRef(kindID)
		}
		p.members = append(p.members, lm)
	}

	ids := make([]models.ReferenceID, 0, len(p.refIDs))
	for refID := range p.refIDs {
		ids = append(ids, refID)
	}
	refs, err := st.FindReferences(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reference names")
	}
	return p.view(refs, now), nil
}

func (p *groupProjection) addRef(id models.ReferenceID) {
	p.refIDs[id] = struct{}{}
}

func (p *groupProjection) addIdentifierRefs(ids []models.Identifier) {
	for _, identifier := range ids {
		p.addRef(identifier.IDTypeID)
	}
}

func (p *groupProjection) loadRelationships(ctx context.Context, st store.Store, id models.RegistrantID) (into, from []models.Relationship, err error) {
	into, err = st.ListRelationships(ctx, id, models.IntoSubject)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load relationships")
	}
	from, err = st.ListRelationships(ctx, id, models.FromSubject)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load relationships")
	}
	for _, rel := range into {
		p.addRef(rel.RelationID)
	}
	for _, rel := range from {
		p.addRef(rel.RelationID)
	}
	return into, from, nil
}

func (p *groupProjection) view(refs map[models.ReferenceID]models.Reference, now time.Time) *models.GroupView {
	g := p.group
	view := &models.GroupView{
		ID:               g.ID,
		Name:             g.Name,
		IsGroup:          true,
		RegistrationDate: g.RegistrationDate,
		Email:            g.Email,
		Address:          g.Address,
		IsPartialGroup:   g.IsPartialGroup,
		IDs:              identifierViews(g.Identifiers, refs),
		PhoneNumbers:     phoneViews(g.PhoneNumbers),
		Members:          make([]models.MemberView, 0, len(p.members)),
		Relationships1:   relationshipViews(p.into, models.IntoSubject, refs),
		Relationships2:   relationshipViews(p.from, models.FromSubject, refs),
		CreateDate:       g.CreatedAt,
	}
	if g.KindID != nil {
		view.Kind = refs[*g.KindID].Name
	}

	for _, m := range p.members {
		kinds := make([]models.KindView, 0, len(m.membership.KindIDs))
		for _, kindID := range m.membership.KindIDs {
			kinds = append(kinds, models.KindView{Name: refs[kindID].Name})
		}
		view.Members = append(view.Members, models.MemberView{
			ID:         m.membership.ID,
			Individual: individualView(m, refs, now),
			Kind:       kinds,
		})
	}
	return view
}

func individualView(m loadedMember, refs map[models.ReferenceID]models.Reference, now time.Time) models.IndividualView {
	ind := m.individual
	return models.IndividualView{
		ID:                ind.ID,
		Name:              ind.Name,
		RegistrationDate:  ind.RegistrationDate,
		Email:             ind.Email,
		GivenName:         ind.GivenName,
		FamilyName:        ind.FamilyName,
		AdditionalName:    ind.AdditionalName,
		Gender:            ind.Gender,
		Birthdate:         ind.Birthdate,
		BirthdateNotExact: ind.BirthdateNotExact,
		BirthPlace:        ind.BirthPlace,
		Age:               ind.Age(now),
		IDs:               identifierViews(ind.Identifiers, refs),
		PhoneNumbers:      phoneViews(ind.PhoneNumbers),
		Relationships1:    relationshipViews(m.into, models.IntoSubject, refs),
		Relationships2:    relationshipViews(m.from, models.FromSubject, refs),
		CreateDate:        ind.CreatedAt,
	}
}

func identifierViews(ids []models.Identifier, refs map[models.ReferenceID]models.Reference) []models.IdentifierView {
	out := make([]models.IdentifierView, 0, len(ids))
	for _, identifier := range ids {
		out = append(out, models.IdentifierView{
			IDType:     refs[identifier.IDTypeID].Name,
			Value:      identifier.Value,
			ExpiryDate: identifier.ExpiryDate,
		})
	}
	return out
}

func phoneViews(phones []models.PhoneNumber) []models.PhoneView {
	out := make([]models.PhoneView, 0, len(phones))
	for _, phone := range phones {
		out = append(out, models.PhoneView{PhoneNo: phone.PhoneNo, DateCollected: phone.DateCollected})
	}
	return out
}

// relationshipViews reports the counterpart of each edge: the source for
// edges pointing at the subject, the destination otherwise.
func relationshipViews(rels []models.Relationship, dir models.Direction, refs map[models.ReferenceID]models.Reference) []models.RelationshipView {
	out := make([]models.RelationshipView, 0, len(rels))
	for _, rel := range rels {
		counterpart := rel.DestinationID
		if dir == models.IntoSubject {
			counterpart = rel.SourceID
		}
		out = append(out, models.RelationshipView{Registrant: counterpart, Relation: refs[rel.RelationID].Name})
	}
	return out
}
