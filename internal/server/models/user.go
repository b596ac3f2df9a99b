// Package models contains the persistence-level entities of the ratings
// backend.
package models

import "time"

// User is a registered account. Email and username are unique
// case-insensitively; PasswordHash is a bcrypt hash, never the plaintext.
type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    *string
	LastName     *string
	PasswordHash string
	CreatedAt    time.Time
}
