package httpapi

import (
	"github.com/dmitrijs2005/voicenotes/internal/dto"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
)

func noteDTO(n *models.Note) dto.Note {
	images := n.Images
	if images == nil {
		images = []string{}
	}
	return dto.Note{
		ID:              n.ID,
		User:            n.UserID,
		Title:           n.Title,
		Audio:           n.AudioURL,
		TranscribedText: n.TranscribedText,
		Content:         n.Content,
		Images:          images,
		IsFavourite:     n.IsFavourite,
		CreatedAt:       n.CreatedAt,
	}
}

func notesDTO(ns []*models.Note) []dto.Note {
	out := make([]dto.Note, 0, len(ns))
	for _, n := range ns {
		out = append(out, noteDTO(n))
	}
	return out
}

func userDTO(u *models.User) dto.User {
	notes := u.NoteIDs
	if notes == nil {
		notes = []string{}
	}
	return dto.User{ID: u.ID, Email: u.Email, Notes: notes, CreatedAt: u.CreatedAt}
}
