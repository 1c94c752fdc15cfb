package domain

import "time"

type ID string

type User struct {
	ID           ID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Summary is the public projection of a User; it never carries the
// password digest.
type Summary struct {
	ID       ID
	Username string
}
