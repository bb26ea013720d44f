package repositories

import (
	"context"

	"inkwell/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ViolationRepository handles violation data access. The violations table is
// append-only: records are created and never updated or deleted.
type ViolationRepository struct {
	db *gorm.DB
}

// NewViolationRepository creates a new violation repository
func NewViolationRepository(db *gorm.DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ViolationRepository) WithTx(tx *gorm.DB) *ViolationRepository {
	return &ViolationRepository{db: tx}
}

// Create appends a new violation record
func (r *ViolationRepository) Create(ctx context.Context, violation *models.Violation) error {
	return r.db.WithContext(ctx).Create(violation).Error
}

// CountPendingByUserID counts a user's violations still marked PENDING.
// This count is the escalation trigger and is always recomputed from the
// ledger rather than cached on the user row.
func (r *ViolationRepository) CountPendingByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Violation{}).
		Where("user_id = ? AND status = ?", userID, "PENDING").
		Count(&count).Error
	return count, err
}

// ListByUserID lists a user's violations with pagination, newest first
func (r *ViolationRepository) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*models.Violation, int64, error) {
	var violations []*models.Violation
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Violation{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&violations).Error

	return violations, total, err
}
