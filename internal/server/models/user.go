// Package models defines server-side data models persisted in the database.
package models

import "time"

// User owns an ordered list of note references. PasswordHash never leaves
// the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	NoteIDs      []string
	CreatedAt    time.Time
}
