package service

import (
	"context"
	"strings"

	"socialregistry/internal/registry/models"
	dErrors "socialregistry/pkg/domain-errors"
)

// builder turns inbound payloads into registrant drafts ready to persist.
type builder struct {
	resolver *resolver
}

func (b *builder) buildIndividual(ctx context.Context, info models.IndividualInfo) (*models.Registrant, error) {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = models.ComposeIndividualName(info.FamilyName, info.GivenName, info.AdditionalName)
	}

	ids, err := b.buildIdentifiers(ctx, info.IDs)
	if err != nil {
		return nil, err
	}

	return &models.Registrant{
		Name:              name,
		IsGroup:           false,
		RegistrationDate:  info.RegistrationDate,
		Email:             info.Email,
		GivenName:         info.GivenName,
		FamilyName:        info.FamilyName,
		AdditionalName:    info.AdditionalName,
		Gender:            info.Gender,
		Birthdate:         info.Birthdate,
		BirthdateNotExact: info.BirthdateNotExact,
		BirthPlace:        info.BirthPlace,
		Identifiers:       ids,
		PhoneNumbers:      buildPhones(info.PhoneNumbers),
	}, nil
}

func (b *builder) buildGroup(ctx context.Context, info models.GroupInfo) (*models.Registrant, error) {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	group := &models.Registrant{
		Name:             name,
		IsGroup:          true,
		RegistrationDate: info.RegistrationDate,
		Email:            info.Email,
		Address:          info.Address,
		IsPartialGroup:   info.IsPartialGroup,
	}

	if strings.TrimSpace(info.Kind) != "" {
		kindID, err := b.resolver.resolve(ctx, models.ReferenceGroupKind, info.Kind)
		if err != nil {
			return nil, err
		}
		group.KindID = &kindID
	}

	ids, err := b.buildIdentifiers(ctx, info.IDs)
	if err != nil {
		return nil, err
	}
	group.Identifiers = ids
	group.PhoneNumbers = buildPhones(info.PhoneNumbers)
	return group, nil
}

// buildIdentifiers resolves each id type by name. Order is preserved.
func (b *builder) buildIdentifiers(ctx context.Context, infos []models.IdentifierInfo) ([]models.Identifier, error) {
	if len(infos) == 0 {
		return nil, nil
	}
	ids := make([]models.Identifier, 0, len(infos))
	for _, info := range infos {
		typeID, err := b.resolver.resolve(ctx, models.ReferenceIDType, info.IDType)
		if err != nil {
			return nil, err
		}
		ids = append(ids, models.Identifier{
			IDTypeID:   typeID,
			Value:      info.Value,
			ExpiryDate: info.ExpiryDate,
		})
	}
	return ids, nil
}

func buildPhones(infos []models.PhoneInfo) []models.PhoneNumber {
	if len(infos) == 0 {
		return nil
	}
	phones := make([]models.PhoneNumber, 0, len(infos))
	for _, info := range infos {
		phones = append(phones, models.PhoneNumber{
			PhoneNo:       info.PhoneNo,
			DateCollected: info.DateCollected,
		})
	}
	return phones
}
