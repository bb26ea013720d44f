package services

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/adapters/persistence/models"
	"inkwell/internal/adapters/persistence/repositories"
	"inkwell/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MinimumPayout is the smallest pending balance eligible for processing,
// in the platform's currency unit.
var MinimumPayout = decimal.NewFromInt(50)

// ValidatePending checks a pending balance against the payout threshold
func ValidatePending(pending decimal.Decimal) error {
	if pending.LessThan(MinimumPayout) {
		return domain.ErrPayoutBelowMinimum
	}
	return nil
}

// PayoutResult is the observable output of a processed payout
type PayoutResult struct {
	Payout  *models.Payout              `json:"payout"`
	Profile *models.MonetizationProfile `json:"profile"`
}

// PayoutService processes creator payouts: threshold guard, then one atomic
// transaction creating the payout record, resetting the creator's view
// counters and reconciling the ledger balances.
type PayoutService struct {
	db               *gorm.DB
	monetizationRepo *repositories.MonetizationRepository
	postRepo         *repositories.PostRepository
}

// NewPayoutService creates a new payout service
func NewPayoutService(db *gorm.DB, monetizationRepo *repositories.MonetizationRepository, postRepo *repositories.PostRepository) *PayoutService {
	return &PayoutService{
		db:               db,
		monetizationRepo: monetizationRepo,
		postRepo:         postRepo,
	}
}

// ProcessPayout processes the pending payout for one profile. The profile
// row is locked for the whole section, so a concurrent second request on the
// same profile waits and then fails the threshold check against the zeroed
// balance instead of double-spending it.
func (s *PayoutService) ProcessPayout(ctx context.Context, profileID uint) (*PayoutResult, error) {
	var result *PayoutResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		monetization := s.monetizationRepo.WithTx(tx)

		profile, err := monetization.GetProfileByIDForUpdate(ctx, profileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProfileNotFound
			}
			return err
		}

		if err := ValidatePending(profile.PendingPayout); err != nil {
			return err
		}

		amount := profile.PendingPayout
		now := time.Now()

		payout := &models.Payout{
			ProfileID:   profile.ID,
			Reference:   uuid.NewString(),
			Amount:      amount,
			Status:      models.PayoutStatusCompleted,
			ProcessedAt: now,
		}
		if err := monetization.CreatePayout(ctx, payout); err != nil {
			return err
		}

		if err := s.postRepo.WithTx(tx).ResetViewsByAuthor(ctx, profile.UserID); err != nil {
			return err
		}

		profile.PendingPayout = decimal.Zero
		profile.TotalEarnings = profile.TotalEarnings.Add(amount)
		profile.LastPayout = &now
		if err := monetization.UpdateProfile(ctx, profile); err != nil {
			return err
		}

		result = &PayoutResult{
			Payout:  payout,
			Profile: profile,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetProfile gets a monetization profile with its owning user
func (s *PayoutService) GetProfile(ctx context.Context, profileID uint) (*models.MonetizationProfile, error) {
	profile, err := s.monetizationRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// ListCreatorPosts lists the posts whose view counters accrue toward the
// profile's pending payout
func (s *PayoutService) ListCreatorPosts(ctx context.Context, profileID uint, offset, limit int) ([]*models.Post, int64, error) {
	profile, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, 0, err
	}

	return s.postRepo.ListByAuthor(ctx, profile.UserID, offset, limit)
}

// ListPayouts lists a profile's payout history, newest first
func (s *PayoutService) ListPayouts(ctx context.Context, profileID uint, offset, limit int) ([]*models.Payout, int64, error) {
	if _, err := s.GetProfile(ctx, profileID); err != nil {
		return nil, 0, err
	}

	return s.monetizationRepo.ListPayoutsByProfileID(ctx, profileID, offset, limit)
}
