package models

import "time"

// Membership places an individual in a group with one or more membership kinds.
type Membership struct {
	ID           int64
	GroupID      RegistrantID
	IndividualID RegistrantID
	KindIDs      []ReferenceID
	CreatedAt    time.Time
}

// Relationship is a directed edge between two registrants.
type Relationship struct {
	ID            int64
	SourceID      RegistrantID
	DestinationID RegistrantID
	RelationID    ReferenceID
	CreatedAt     time.Time
}

// Direction selects which end of an edge the subject registrant occupies.
type Direction int

const (
	// IntoSubject writes counterpart -> subject (payload slot relationships_1).
	IntoSubject Direction = iota + 1
	// FromSubject writes subject -> counterpart (payload slot relationships_2).
	FromSubject
)

func (d Direction) String() string {
	switch d {
	case IntoSubject:
		return "into_subject"
	case FromSubject:
		return "from_subject"
	}
	return "unknown"
}

// Edge orients an edge between subject and counterpart.
func (d Direction) Edge(subject, counterpart RegistrantID, relation ReferenceID) Relationship {
	if d == IntoSubject {
		return Relationship{SourceID: counterpart, DestinationID: subject, RelationID: relation}
	}
	return Relationship{SourceID: subject, DestinationID: counterpart, RelationID: relation}
}
