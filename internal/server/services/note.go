package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/dmitrijs2005/voicenotes/internal/dbx"
	"github.com/dmitrijs2005/voicenotes/internal/logging"
	"github.com/dmitrijs2005/voicenotes/internal/notefilter"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
	"github.com/dmitrijs2005/voicenotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/voicenotes/internal/server/storage"
)

const (
	msgMissingNoteFields = "Please provide title, audio, and transcribedText"
	msgNoteNotFound      = "Note not found"
	msgSearchRequired    = "Search query is required"
)

// Storage keeps uploaded note assets.
type Storage interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (*storage.Object, error)
	Delete(ctx context.Context, key string) error
}

// Upload is one file received from a client.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     Storage
	log         logging.Logger
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, st Storage, log logging.Logger) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
		storage:     st,
		log:         log,
	}
}

func (s *NoteService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.WithMessage(common.ErrorNotFound, msgUserNotFound)
		}
		return fmt.Errorf("error searching user: %w", err)
	}
	return nil
}

// owned loads a note and hides notes of other users behind NotFound.
func (s *NoteService) owned(ctx context.Context, userID, noteID string) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorNotFound, msgNoteNotFound)
		}
		return nil, fmt.Errorf("error searching note: %w", err)
	}
	if note.UserID != userID {
		return nil, common.WithMessage(common.ErrorNotFound, msgNoteNotFound)
	}
	return note, nil
}

// discard removes uploaded objects whose note write failed.
func (s *NoteService) discard(ctx context.Context, keys ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn(ctx, "orphaned object left in storage", "key", key, "error", err)
		}
	}
}

// List returns the user's notes, oldest first.
func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	notes, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching notes: %w", err)
	}
	return notes, nil
}

// Create uploads the audio and stores a new note referenced from the user's
// note list. The note row and the reference are written in one transaction.
func (s *NoteService) Create(ctx context.Context, userID, title, transcribedText string, audio *Upload) (*models.Note, error) {
	if strings.TrimSpace(title) == "" || transcribedText == "" || audio == nil || audio.Body == nil {
		return nil, common.WithMessage(common.ErrorValidation, msgMissingNoteFields)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	contentType := audio.ContentType
	if contentType == "" {
		contentType = common.AudioMediaType
	}
	obj, err := s.storage.Upload(ctx, audio.Name, contentType, audio.Body)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		UserID:          userID,
		Title:           title,
		AudioURL:        obj.URL,
		TranscribedText: transcribedText,
		Images:          []string{},
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Notes(tx).Create(ctx, note); err != nil {
			return err
		}
		return s.repomanager.Users(tx).AppendNote(ctx, userID, note.ID)
	})
	if err != nil {
		s.discard(ctx, obj.Key)
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	s.log.Info(ctx, "note created", "note_id", note.ID, "user_id", userID)
	return note, nil
}

// Update applies patch, uploads images in order and appends their URLs.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, patch models.NotePatch, images []Upload) (*models.Note, error) {
	if _, err := s.owned(ctx, userID, noteID); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(images))
	keys := make([]string, 0, len(images))
	for _, img := range images {
		obj, err := s.storage.Upload(ctx, img.Name, img.ContentType, img.Body)
		if err != nil {
			s.discard(ctx, keys...)
			return nil, err
		}
		urls = append(urls, obj.URL)
		keys = append(keys, obj.Key)
	}

	note, err := s.repomanager.Notes(s.db).Patch(ctx, noteID, patch, urls)
	if err != nil {
		s.discard(ctx, keys...)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorNotFound, msgNoteNotFound)
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return note, nil
}

// Delete removes the note and its reference from the owner's list together.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.owned(ctx, userID, noteID); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).RemoveNote(ctx, userID, noteID); err != nil {
			return err
		}
		return s.repomanager.Notes(tx).Delete(ctx, noteID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.WithMessage(common.ErrorNotFound, msgNoteNotFound)
		}
		return fmt.Errorf("error deleting note: %w", err)
	}

	s.log.Info(ctx, "note deleted", "note_id", noteID, "user_id", userID)
	return nil
}

// ToggleFavourite flips the favourite flag and returns the updated note.
func (s *NoteService) ToggleFavourite(ctx context.Context, userID, noteID string) (*models.Note, error) {
	if _, err := s.owned(ctx, userID, noteID); err != nil {
		return nil, err
	}

	note, err := s.repomanager.Notes(s.db).ToggleFavourite(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorNotFound, msgNoteNotFound)
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return note, nil
}

func (s *NoteService) Favourites(ctx context.Context, userID string) ([]*models.Note, error) {
	notes, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return notefilter.Favourites(notes), nil
}

// Search returns notes whose title contains query, ignoring case.
func (s *NoteService) Search(ctx context.Context, userID, query string) ([]*models.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, common.WithMessage(common.ErrorValidation, msgSearchRequired)
	}
	notes, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return notefilter.SearchTitle(notes, query), nil
}
