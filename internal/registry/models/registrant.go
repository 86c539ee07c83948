package models

import (
	"strconv"
	"strings"
	"time"
)

type RegistrantID int64

type ReferenceID int64

type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
	GenderOther  Gender = "Other"
)

// NoBirthdate is reported as the age of an individual with no birthdate.
const NoBirthdate = "No Birthdate!"

// Registrant is either an individual or a group, discriminated by IsGroup.
//
// Invariants:
//   - individual fields are meaningful only when IsGroup is false
//   - Address, IsPartialGroup and KindID are meaningful only when IsGroup is true
//   - Identifiers and PhoneNumbers belong to exactly this registrant
type Registrant struct {
	ID               RegistrantID
	Name             string
	IsGroup          bool
	RegistrationDate *Date
	Email            string

	GivenName         string
	FamilyName        string
	AdditionalName    string
	Gender            Gender
	Birthdate         *Date
	BirthdateNotExact bool
	BirthPlace        string

	Address        string
	IsPartialGroup bool
	KindID         *ReferenceID

	Identifiers  []Identifier
	PhoneNumbers []PhoneNumber

	CreatedAt time.Time
}

// Identifier is an official document or number held by a registrant.
type Identifier struct {
	ID           int64
	RegistrantID RegistrantID
	IDTypeID     ReferenceID
	Value        string
	ExpiryDate   *Date
}

type PhoneNumber struct {
	ID            int64
	RegistrantID  RegistrantID
	PhoneNo       string
	DateCollected *Date
}

// Age returns the whole years between the birthdate and now, or NoBirthdate.
func (r *Registrant) Age(now time.Time) string {
	if r.Birthdate == nil {
		return NoBirthdate
	}
	return strconv.Itoa(YearsBetween(r.Birthdate.Time, now))
}

// YearsBetween counts completed years from birth to now. A birth date after
// now yields zero.
func YearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// ComposeIndividualName builds the upper-cased "FAMILY, GIVEN ADDITIONAL"
// display name used when an individual is registered without a name.
func ComposeIndividualName(family, given, additional string) string {
	var b strings.Builder
	if family != "" {
		b.WriteString(family)
		b.WriteString(", ")
	}
	if given != "" {
		b.WriteString(given)
		b.WriteString(" ")
	}
	if additional != "" {
		b.WriteString(additional)
	}
	return strings.ToUpper(strings.TrimRight(strings.TrimSpace(b.String()), ","))
}
