package models

// GroupInfo is the composite registration payload: a group, its members and
// their relationships.
type GroupInfo struct {
	Name             string             `json:"name" validate:"required,notblank,max=256"`
	RegistrationDate *Date              `json:"registration_date,omitempty"`
	Email            string             `json:"email,omitempty" validate:"omitempty,email"`
	Address          string             `json:"address,omitempty"`
	IsPartialGroup   bool               `json:"is_partial_group,omitempty"`
	Kind             string             `json:"kind,omitempty" validate:"max=128"`
	IDs              []IdentifierInfo   `json:"ids,omitempty" validate:"dive"`
	PhoneNumbers     []PhoneInfo        `json:"phone_numbers,omitempty" validate:"dive"`
	Members          []MemberInfo       `json:"members,omitempty" validate:"dive"`
	Relationships1   []RelationshipInfo `json:"relationships_1,omitempty" validate:"dive"`
	Relationships2   []RelationshipInfo `json:"relationships_2,omitempty" validate:"dive"`
}

// MemberInfo is one member of a group payload.
type MemberInfo struct {
	Individual IndividualInfo `json:"individual"`
	Kind       []KindInfo     `json:"kind,omitempty" validate:"dive"`
}

type KindInfo struct {
	Name string `json:"name" validate:"required,max=128"`
}

// IndividualInfo describes an individual registered as part of a group.
type IndividualInfo struct {
	Name              string             `json:"name,omitempty" validate:"max=256"`
	RegistrationDate  *Date              `json:"registration_date,omitempty"`
	Email             string             `json:"email,omitempty" validate:"omitempty,email"`
	GivenName         string             `json:"given_name,omitempty"`
	FamilyName        string             `json:"family_name,omitempty"`
	AdditionalName    string             `json:"addl_name,omitempty"`
	Gender            Gender             `json:"gender,omitempty" validate:"omitempty,oneof=Female Male Other"`
	Birthdate         *Date              `json:"birthdate,omitempty"`
	BirthdateNotExact bool               `json:"birthdate_not_exact,omitempty"`
	BirthPlace        string             `json:"birth_place,omitempty"`
	IDs               []IdentifierInfo   `json:"ids,omitempty" validate:"dive"`
	PhoneNumbers      []PhoneInfo        `json:"phone_numbers,omitempty" validate:"dive"`
	Relationships1    []RelationshipInfo `json:"relationships_1,omitempty" validate:"dive"`
	Relationships2    []RelationshipInfo `json:"relationships_2,omitempty" validate:"dive"`
}

type IdentifierInfo struct {
	IDType     string `json:"id_type" validate:"required,max=128"`
	Value      string `json:"value" validate:"required"`
	ExpiryDate *Date  `json:"expiry_date,omitempty"`
}

type PhoneInfo struct {
	PhoneNo       string `json:"phone_no" validate:"required,max=64"`
	DateCollected *Date  `json:"date_collected,omitempty"`
}

// RelationshipInfo names a counterpart registrant by id and the relation label.
// An id that matches no registrant is skipped at registration.
type RelationshipInfo struct {
	Registrant RegistrantID `json:"registrant"`
	Relation   string       `json:"relation" validate:"required,max=128"`
}

// GroupSearch filters group search. Zero values mean "no filter".
type GroupSearch struct {
	Name string
	ID   RegistrantID
}
