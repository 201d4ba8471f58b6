// Package models defines the server-side data records shared by repositories
// and services.
package models

import "time"

// User is the principal record used for signing/verification comparisons.
// Immutable once loaded for a request.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	RegisteredAt time.Time
}
