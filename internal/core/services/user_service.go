package services

import (
	"context"
	"errors"

	"inkwell/internal/adapters/persistence/models"
	"inkwell/internal/adapters/persistence/repositories"
	"inkwell/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles user management for the back office
type UserService struct {
	userRepo      repositories.UserRepository
	violationRepo *repositories.ViolationRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, violationRepo *repositories.ViolationRepository) *UserService {
	return &UserService{
		userRepo:      userRepo,
		violationRepo: violationRepo,
	}
}

// ListUsers lists users with pagination, annotated with each user's
// pending-violation count so the back office can see who is close to the
// auto-ban threshold.
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()

		pending, err := s.violationRepo.CountPendingByUserID(ctx, user.ID)
		if err == nil {
			userResponses[i].PendingViolations = pending
		}
	}

	return userResponses, total, nil
}

// GetUserByID gets a user by ID with their pending-violation count
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	response := user.ToResponse()

	pending, err := s.violationRepo.CountPendingByUserID(ctx, user.ID)
	if err == nil {
		response.PendingViolations = pending
	}

	return response, nil
}
