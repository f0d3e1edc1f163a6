// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Username and Email are unique across
// all users; uniqueness is enforced at creation time and both are immutable
// afterwards (no update or delete operation exists for users).
type User struct {
	ID             uuid.UUID // Unique identifier, assigned at creation.
	Username       string    // Unique login name, case-sensitive.
	Email          string    // Unique contact email.
	PasswordDigest string    // Salted one-way digest of the password. Never exposed outward.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
