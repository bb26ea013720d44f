package repositories

import (
	"context"

	"inkwell/internal/adapters/persistence/models"
)

// UserRepository defines read access to user accounts. Writes to status and
// role go through the enforcement transaction, never through a repository
// method, so no update surface is exposed here.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
}
