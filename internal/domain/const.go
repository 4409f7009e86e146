package domain

// Kind names one of the catalog's entity tables.
type Kind string

const (
	KindCharacter Kind = "Character"
	KindMovie     Kind = "Movie"
	KindFranchise Kind = "Franchise"
)

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCharacter, KindMovie, KindFranchise:
		return true
	default:
		return false
	}
}

const (
	RequestIDCtxKey = "filmapi-requestId"
)

type EventType string

const (
	EventCreated      EventType = "created"
	EventUpdated      EventType = "updated"
	EventDeleted      EventType = "deleted"
	EventAssociations EventType = "associations"
)
