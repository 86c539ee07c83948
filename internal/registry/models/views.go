package models

import "time"

// GroupView is the full projection of a registered group.
type GroupView struct {
	ID               RegistrantID       `json:"id"`
	Name             string             `json:"name"`
	IsGroup          bool               `json:"is_group"`
	RegistrationDate *Date              `json:"registration_date"`
	Email            string             `json:"email,omitempty"`
	Address          string             `json:"address,omitempty"`
	IsPartialGroup   bool               `json:"is_partial_group"`
	Kind             string             `json:"kind,omitempty"`
	IDs              []IdentifierView   `json:"ids"`
	PhoneNumbers     []PhoneView        `json:"phone_numbers"`
	Members          []MemberView       `json:"members"`
	Relationships1   []RelationshipView `json:"relationships_1"`
	Relationships2   []RelationshipView `json:"relationships_2"`
	CreateDate       time.Time          `json:"create_date"`
}

// MemberView is one membership of a group.
type MemberView struct {
	ID         int64          `json:"id"`
	Individual IndividualView `json:"individual"`
	Kind       []KindView     `json:"kind"`
}

type KindView struct {
	Name string `json:"name"`
}

type IndividualView struct {
	ID                RegistrantID       `json:"id"`
	Name              string             `json:"name"`
	RegistrationDate  *Date              `json:"registration_date"`
	Email             string             `json:"email,omitempty"`
	GivenName         string             `json:"given_name,omitempty"`
	FamilyName        string             `json:"family_name,omitempty"`
	AdditionalName    string             `json:"addl_name,omitempty"`
	Gender            Gender             `json:"gender,omitempty"`
	Birthdate         *Date              `json:"birthdate"`
	BirthdateNotExact bool               `json:"birthdate_not_exact"`
	BirthPlace        string             `json:"birth_place,omitempty"`
	Age               string             `json:"age"`
	IDs               []IdentifierView   `json:"ids"`
	PhoneNumbers      []PhoneView        `json:"phone_numbers"`
	Relationships1    []RelationshipView `json:"relationships_1"`
	Relationships2    []RelationshipView `json:"relationships_2"`
	CreateDate        time.Time          `json:"create_date"`
}

type IdentifierView struct {
	IDType     string `json:"id_type"`
	Value      string `json:"value"`
	ExpiryDate *Date  `json:"expiry_date"`
}

type PhoneView struct {
	PhoneNo       string `json:"phone_no"`
	DateCollected *Date  `json:"date_collected"`
}

// RelationshipView names the other end of an edge and the relation label.
type RelationshipView struct {
	Registrant RegistrantID `json:"registrant"`
	Relation   string       `json:"relation"`
}

// GroupSummary is the short projection returned by search.
type GroupSummary struct {
	ID               RegistrantID `json:"id"`
	Name             string       `json:"name"`
	RegistrationDate *Date        `json:"registration_date"`
	Email            string       `json:"email,omitempty"`
	Address          string       `json:"address,omitempty"`
}
