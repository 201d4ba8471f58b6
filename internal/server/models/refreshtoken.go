package models

import "time"

// RefreshToken is the persisted long-lived credential. Token is an opaque,
// unguessable value; the row is the sole authority for its state.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
