// Package users provides the PostgreSQL-backed user repository.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/dmitrijs2005/voicenotes/internal/dbx"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user and fills in ID and CreatedAt. A taken email yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// AppendNote adds noteID to the end of the user's note list.
func (r *PostgresRepository) AppendNote(ctx context.Context, userID, noteID string) error {
	query :=
		`INSERT INTO user_notes (user_id, note_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, note_id) DO NOTHING
		 `
	if _, err := r.db.ExecContext(ctx, query, userID, noteID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RemoveNote drops noteID from the user's note list. Removing an absent
// reference is not an error.
func (r *PostgresRepository) RemoveNote(ctx context.Context, userID, noteID string) error {
	query :=
		`DELETE FROM user_notes
		 WHERE user_id = $1 AND note_id = $2
		 `
	if _, err := r.db.ExecContext(ctx, query, userID, noteID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
