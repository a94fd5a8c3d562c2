// Package notes provides the PostgreSQL-backed note repository.
package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/dmitrijs2005/voicenotes/internal/dbx"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
)

const noteColumns = `n.id, n.user_id, n.title, n.audio_url, n.transcribed_text, n.content, n.images, n.is_favourite, n.created_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*models.Note, error) {
	var (
		n      models.Note
		images []byte
	)
	if err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.AudioURL, &n.TranscribedText,
		&n.Content, &images, &n.IsFavourite, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &n.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return &n, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Create inserts note and fills in ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	images, err := encodeImages(note.Images)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO notes (user_id, title, audio_url, transcribed_text, content, images, is_favourite)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query, note.UserID, note.Title, note.AudioURL,
		note.TranscribedText, note.Content, images, note.IsFavourite).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if note.Images == nil {
		note.Images = []string{}
	}

	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes n
		 WHERE n.id = $1
		 `

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

// Patch overwrites the non-empty fields of p and appends images in a single
// statement, so concurrent edits never drop each other's images.
func (r *PostgresRepository) Patch(ctx context.Context, id string, p models.NotePatch, images []string) (*models.Note, error) {
	appended, err := encodeImages(images)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE notes AS n
		 SET title = COALESCE(NULLIF($2, ''), n.title),
		     content = COALESCE(NULLIF($3, ''), n.content),
		     transcribed_text = COALESCE(NULLIF($4, ''), n.transcribed_text),
		     images = n.images || $5::jsonb
		 WHERE n.id = $1
		 RETURNING ` + noteColumns

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id, p.Title, p.Content, p.TranscribedText, appended))
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

// ToggleFavourite flips is_favourite in place and returns the updated note.
func (r *PostgresRepository) ToggleFavourite(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`UPDATE notes AS n
		 SET is_favourite = NOT n.is_favourite
		 WHERE n.id = $1
		 RETURNING ` + noteColumns

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return notFound(err)
	}
	return expectOneRow(res)
}

// notFound maps a missing row or a malformed id to common.ErrorNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidInput(err) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// ListByUser returns the notes referenced by the user's note list, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes n
		 JOIN user_notes un ON un.note_id = n.id
		 WHERE un.user_id = $1
		 ORDER BY n.created_at, un.seq
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := []*models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
