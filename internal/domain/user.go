package domain

import "time"

// Role classifies an account within the institution. Only STUDENT is
// assigned through registration today; STAFF and ADMIN are reserved for
// administrative tooling.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// User is the domain model for a registered account. PasswordHash is
// opaque outside the auth package and never serialized into responses.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
