package models

// Friend represents a participant in the shared ledger.
// Identity is by ID. Names are not required to be unique.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format by default).
	ID string `json:"id"`

	// Name is the display name of the friend.
	Name string `json:"name"`

	// AvatarColor is a display-only colour, e.g. "#9b87f5".
	AvatarColor string `json:"avatarColor"`
}
