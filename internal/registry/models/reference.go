package models

// ReferenceKind names one family of lookup entities.
type ReferenceKind string

const (
	ReferenceIDType         ReferenceKind = "id_type"
	ReferenceGroupKind      ReferenceKind = "group_kind"
	ReferenceMembershipKind ReferenceKind = "membership_kind"
	ReferenceRelationType   ReferenceKind = "relation_type"
)

func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceIDType, ReferenceGroupKind, ReferenceMembershipKind, ReferenceRelationType:
		return true
	}
	return false
}

func (k ReferenceKind) String() string {
	return string(k)
}

// Reference is a named lookup entity, unique by (Kind, Name).
type Reference struct {
	ID   ReferenceID
	Kind ReferenceKind
	Name string
}
