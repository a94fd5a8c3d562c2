package models

import "time"

// Note is a voice memo owned by exactly one user.
type Note struct {
	// ID is assigned by the database.
	ID string
	// UserID is the back-reference to the owner.
	UserID string

	Title string
	// AudioURL points at the recording in object storage.
	AudioURL        string
	TranscribedText string
	// Content holds user-written notes, separate from the transcript.
	Content string
	// Images are object-storage URLs in upload order; the editor only appends.
	Images      []string
	IsFavourite bool
	CreatedAt   time.Time
}

func (n *Note) GetTitle() string { return n.Title }

func (n *Note) GetIsFavourite() bool { return n.IsFavourite }

// NotePatch is a partial update. Empty strings leave the field untouched.
type NotePatch struct {
	Title           string
	Content         string
	TranscribedText string
}
