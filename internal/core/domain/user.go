package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role classifies a user's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// IsValid reports whether r is one of the enumerated roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// Error messages are part of the public API contract and must stay verbatim.
var ErrUserNotFound = errors.New("User not found")
var ErrEmailExists = errors.New("Email already exists")

// LimitReachedError is returned when accepting a create request would push the
// total user count past the configured maximum.
type LimitReachedError struct {
	Max int
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("Maximum users limit (%d) reached", e.Max)
}

// ValidationError reports a field that violates the collection schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// User is the sole entity of the service. ID and CreatedAt are assigned by the
// store on insert and never change afterwards.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Validate enforces the collection schema: name and email are required and
// role must be one of the enumerated values. Updates replace the whole
// mutable field set, so an update that omits a field fails here too.
func (u *User) Validate() error {
	if u.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if u.Email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if !u.Role.IsValid() {
		return &ValidationError{Field: "role", Reason: "must be one of: admin user guest"}
	}
	return nil
}
