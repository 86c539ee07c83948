package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"socialregistry/internal/platform/tracing"
	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
	dErrors "socialregistry/pkg/domain-errors"
	"socialregistry/pkg/requestcontext"
)

// RegisterGroup creates a group together with its member individuals, their
// identifiers, phone numbers, relationships and memberships. Every write
// happens in one store transaction; any failure leaves the store unchanged.
func (s *Service) RegisterGroup(ctx context.Context, info models.GroupInfo) (*models.GroupView, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "registry.register_group",
		attribute.Int("group.members", len(info.Members)))
	defer span.End()

	stats := &runStats{}
	now := requestcontext.Now(ctx)

	var view *models.GroupView
	err := s.store.RunInTx(ctx, func(tx store.Store) error {
		res := &resolver{store: tx, stats: stats}
		b := &builder{resolver: res}
		l := &linker{store: tx, resolver: res, stats: stats, warn: s.logWarn}

		staged := make([]models.Membership, 0, len(info.Members))
		for _, member := range info.Members {
			m, err := s.registerMember(ctx, tx, b, l, member)
			if err != nil {
				return err
			}
			stats.individuals++
			staged = append(staged, m)
		}

		group, err := b.buildGroup(ctx, info)
		if err != nil {
			return err
		}
		if err := tx.CreateRegistrant(ctx, group); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create group")
		}
		if err := l.link(ctx, info.Relationships1, group.ID, models.IntoSubject); err != nil {
			return err
		}
		if err := l.link(ctx, info.Relationships2, group.ID, models.FromSubject); err != nil {
			return err
		}

		for i := range staged {
			staged[i].GroupID = group.ID
			if err := tx.CreateMembership(ctx, &staged[i]); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create membership")
			}
		}

		view, err = loadGroupView(ctx, tx, group.ID, now)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, asDomainError(err, "failed to register group")
	}

	s.publish(stats)
	if s.metrics != nil {
		s.metrics.IncrementGroupsRegistered()
		s.metrics.ObserveRegistration(start)
	}
	span.SetAttributes(attribute.Int64("group.id", int64(view.ID)))
	s.logAudit(ctx, eventGroupRegistered,
		"group_id", int64(view.ID),
		"members", len(view.Members))
	return view, nil
}

// registerMember creates one individual, links its relationships and returns
// the membership staged for the group that is created afterwards.
func (s *Service) registerMember(ctx context.Context, tx store.Store, b *builder, l *linker, member models.MemberInfo) (models.Membership, error) {
	individual, err := b.buildIndividual(ctx, member.Individual)
	if err != nil {
		return models.Membership{}, err
	}
	if err := tx.CreateRegistrant(ctx, individual); err != nil {
		return models.Membership{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create individual")
	}
	if err := l.link(ctx, member.Individual.Relationships1, individual.ID, models.IntoSubject); err != nil {
		return models.Membership{}, err
	}
	if err := l.link(ctx, member.Individual.Relationships2, individual.ID, models.FromSubject); err != nil {
		return models.Membership{}, err
	}

	kindIDs := make([]models.ReferenceID, 0, len(member.Kind))
	for _, kind := range member.Kind {
		kindID, err := b.resolver.resolve(ctx, models.ReferenceMembershipKind, kind.Name)
		if err != nil {
			return models.Membership{}, err
		}
		if !slices.Contains(kindIDs, kindID) {
			kindIDs = append(kindIDs, kindID)
		}
	}
	return models.Membership{IndividualID: individual.ID, KindIDs: kindIDs}, nil
}

// asDomainError keeps domain errors intact and wraps infrastructure failures
// such as a failed commit.
func asDomainError(err error, msg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
