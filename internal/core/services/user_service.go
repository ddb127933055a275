package services

import (
	"context"
	"errors"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/adapters/persistence/repositories"
	"trip-planner/internal/core/domain"
	"trip-planner/internal/pkg/pagination"

	"gorm.io/gorm"
)

// UserService handles user administration logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	return responses, pagination.GetMeta(params, total), nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}
