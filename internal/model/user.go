package model

import "time"

// User is a registered account. Email doubles as the login handle and is unique.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Name         string    `json:"name"      db:"name"`  // Display name used in letter salutations
	Email        string    `json:"email"     db:"email"` // Login handle, e.g. "mina@gmail.com"
	PasswordHash string    `json:"-"         db:"password_hash"`
	GitHubID     int64     `json:"-"         db:"github_id"` // Set only for GitHub sign-ins
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
