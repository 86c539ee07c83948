package postgres

import (
	"time"

	"socialregistry/internal/registry/models"
)

const (
	tableReferences      = "reference_entities"
	tableRegistrants     = "registrants"
	tableIdentifiers     = "registrant_identifiers"
	tablePhoneNumbers    = "registrant_phone_numbers"
	tableRelationships   = "registrant_relationships"
	tableMemberships     = "group_memberships"
	tableMembershipKinds = "group_membership_kinds"
)

var registrantColumns = []string{
	"id", "name", "is_group", "registration_date", "email",
	"given_name", "family_name", "addl_name", "gender", "birthdate",
	"birthdate_not_exact", "birth_place", "address", "is_partial_group",
	"kind_id", "created_at",
}

type registrantRow struct {
	ID                int64      `db:"id"`
	Name              string     `db:"name"`
	IsGroup           bool       `db:"is_group"`
	RegistrationDate  *time.Time `db:"registration_date"`
	Email             string     `db:"email"`
	GivenName         string     `db:"given_name"`
	FamilyName        string     `db:"family_name"`
	AdditionalName    string     `db:"addl_name"`
	Gender            string     `db:"gender"`
	Birthdate         *time.Time `db:"birthdate"`
	BirthdateNotExact bool       `db:"birthdate_not_exact"`
	BirthPlace        string     `db:"birth_place"`
	Address           string     `db:"address"`
	IsPartialGroup    bool       `db:"is_partial_group"`
	KindID            *int64     `db:"kind_id"`
	CreatedAt         time.Time  `db:"created_at"`
}

func (r registrantRow) toModel() *models.Registrant {
	out := &models.Registrant{
		ID:                models.RegistrantID(r.ID),
		Name:              r.Name,
		IsGroup:           r.IsGroup,
		RegistrationDate:  models.DatePtr(r.RegistrationDate),
		Email:             r.Email,
		GivenName:         r.GivenName,
		FamilyName:        r.FamilyName,
		AdditionalName:    r.AdditionalName,
		Gender:            models.Gender(r.Gender),
		Birthdate:         models.DatePtr(r.Birthdate),
		BirthdateNotExact: r.BirthdateNotExact,
		BirthPlace:        r.BirthPlace,
		Address:           r.Address,
		IsPartialGroup:    r.IsPartialGroup,
		CreatedAt:         r.CreatedAt,
	}
	if r.KindID != nil {
		kindID := models.ReferenceID(*r.KindID)
		out.KindID = &kindID
	}
	return out
}

type identifierRow struct {
	ID           int64      `db:"id"`
	RegistrantID int64      `db:"registrant_id"`
	IDTypeID     int64      `db:"id_type_id"`
	Value        string     `db:"value"`
	ExpiryDate   *time.Time `db:"expiry_date"`
}

func (r identifierRow) toModel() models.Identifier {
	return models.Identifier{
		ID:           r.ID,
		RegistrantID: models.RegistrantID(r.RegistrantID),
		IDTypeID:     models.ReferenceID(r.IDTypeID),
		Value:        r.Value,
		ExpiryDate:   models.DatePtr(r.ExpiryDate),
	}
}

type phoneRow struct {
	ID            int64      `db:"id"`
	RegistrantID  int64      `db:"registrant_id"`
	PhoneNo       string     `db:"phone_no"`
	DateCollected *time.Time `db:"date_collected"`
}

func (r phoneRow) toModel() models.PhoneNumber {
	return models.PhoneNumber{
		ID:            r.ID,
		RegistrantID:  models.RegistrantID(r.RegistrantID),
		PhoneNo:       r.PhoneNo,
		DateCollected: models.DatePtr(r.DateCollected),
	}
}

type referenceRow struct {
	ID   int64  `db:"id"`
	Kind string `db:"kind"`
	Name string `db:"name"`
}

type relationshipRow struct {
	ID            int64     `db:"id"`
	SourceID      int64     `db:"source_id"`
	DestinationID int64     `db:"destination_id"`
	RelationID    int64     `db:"relation_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r relationshipRow) toModel() models.Relationship {
	return models.Relationship{
		ID:            r.ID,
		SourceID:      models.RegistrantID(r.SourceID),
		DestinationID: models.RegistrantID(r.DestinationID),
		RelationID:    models.ReferenceID(r.RelationID),
		CreatedAt:     r.CreatedAt,
	}
}

type membershipRow struct {
	ID           int64     `db:"id"`
	GroupID      int64     `db:"group_id"`
	IndividualID int64     `db:"individual_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type membershipKindRow struct {
	MembershipID int64 `db:"membership_id"`
	KindID       int64 `db:"kind_id"`
}

type insertedRow struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
