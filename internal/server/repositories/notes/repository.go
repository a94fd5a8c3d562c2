package notes

import (
	"context"

	"github.com/dmitrijs2005/voicenotes/internal/server/models"
)

// Repository persists notes.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Patch(ctx context.Context, id string, p models.NotePatch, images []string) (*models.Note, error)
	ToggleFavourite(ctx context.Context, id string) (*models.Note, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
}
