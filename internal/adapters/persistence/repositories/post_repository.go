package repositories

import (
	"context"

	"inkwell/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PostRepository handles post data access
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

// ListByAuthor lists an author's posts with pagination
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]*models.Post, int64, error) {
	var posts []*models.Post
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

// ResetViewsByAuthor zeroes the accrual counter on every post the author
// owns. Runs inside the payout transaction so a new accumulation period
// starts exactly when the payout commits.
func (r *PostRepository) ResetViewsByAuthor(ctx context.Context, authorID uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Update("view_count", 0).Error
}
