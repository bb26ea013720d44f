package repositories

import (
	"context"

	"inkwell/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonetizationRepository handles monetization profile and payout data access
type MonetizationRepository struct {
	db *gorm.DB
}

// NewMonetizationRepository creates a new monetization repository
func NewMonetizationRepository(db *gorm.DB) *MonetizationRepository {
	return &MonetizationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *MonetizationRepository) WithTx(tx *gorm.DB) *MonetizationRepository {
	return &MonetizationRepository{db: tx}
}

// GetProfileByID gets a monetization profile with its owning user
func (r *MonetizationRepository) GetProfileByID(ctx context.Context, id uint) (*models.MonetizationProfile, error) {
	var profile models.MonetizationProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByIDForUpdate gets a profile under a SELECT ... FOR UPDATE row
// lock. Must be called on a repository bound to a transaction; the lock
// serializes concurrent payout attempts against the same profile.
func (r *MonetizationRepository) GetProfileByIDForUpdate(ctx context.Context, id uint) (*models.MonetizationProfile, error) {
	var profile models.MonetizationProfile
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates a monetization profile
func (r *MonetizationRepository) UpdateProfile(ctx context.Context, profile *models.MonetizationProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// CreatePayout appends a new payout record
func (r *MonetizationRepository) CreatePayout(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

// ListPayoutsByProfileID lists a profile's payout history, newest first
func (r *MonetizationRepository) ListPayoutsByProfileID(ctx context.Context, profileID uint, offset, limit int) ([]*models.Payout, int64, error) {
	var payouts []*models.Payout
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payout{}).
		Where("profile_id = ?", profileID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("processed_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payouts).Error

	return payouts, total, err
}
