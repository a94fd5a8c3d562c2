package users

import (
	"context"

	"github.com/dmitrijs2005/voicenotes/internal/server/models"
)

// Repository persists users and their ordered note references.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	AppendNote(ctx context.Context, userID, noteID string) error
	RemoveNote(ctx context.Context, userID, noteID string) error
}
