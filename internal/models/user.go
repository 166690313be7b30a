package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is the unique numeric identifier assigned by the store.
	ID int64

	// Name is the unique login handle, also used for display.
	Name string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized into API responses.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last password change.
	UpdatedAt int64
}

// NewUser creates a user with the given name and password hash.
// ID is assigned by the store on insert.
func NewUser(name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
