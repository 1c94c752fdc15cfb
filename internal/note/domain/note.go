package domain

import "time"

// Note is an active note. Only the owner can see or mutate it.
type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArchivedNote is an independent copy made when a Note leaves the active
// set. It has its own identity; the source note no longer exists once the
// archive transition commits. CreatedAt carries the source note's original
// creation time and may be nil for rows imported without one.
type ArchivedNote struct {
	ID         string
	OwnerID    string
	Title      string
	Content    string
	CreatedAt  *time.Time
	ArchivedAt time.Time
}
