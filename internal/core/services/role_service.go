package services

import (
	"context"
	"errors"
	"log"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/adapters/persistence/repositories"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/domain"

	"gorm.io/gorm"
)

// RoleService handles role management business logic. All of its
// operations are ADMIN-gated at the route layer.
type RoleService struct {
	roleRepo repositories.RoleRepository
	userRepo repositories.UserRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

// RoleInput represents role create/update input
type RoleInput struct {
	Name        string `json:"name" validate:"required,oneof=USER ADMIN MODERATOR"`
	Description string `json:"description"`
}

// List lists all roles
func (s *RoleService) List(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.List(ctx)
}

// GetByID gets a role by ID
func (s *RoleService) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

// Create creates a new role. The role name must belong to the closed set.
func (s *RoleService) Create(ctx context.Context, input *RoleInput) (*models.Role, error) {
	if !validRoleName(input.Name) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.roleRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrRoleExists
	}

	role := &models.Role{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	log.Printf("✅ Role created: %s", role.Name)
	return role, nil
}

// Update updates a role's name and description
func (s *RoleService) Update(ctx context.Context, id uint, input *RoleInput) (*models.Role, error) {
	if !validRoleName(input.Name) {
		return nil, domain.ErrInvalidInput
	}

	role, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Name = input.Name
	role.Description = input.Description

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete deletes a role. Deletion fails with ErrRoleInUse while any user
// still references the role, so no user is left with a dangling role.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.userRepo.CountWithRole(ctx, role.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrRoleInUse
	}

	if err := s.roleRepo.Delete(ctx, role.ID); err != nil {
		return err
	}

	log.Printf("✅ Role deleted: %s", role.Name)
	return nil
}

// AssignToUser adds a role to a user's role set
func (s *RoleService) AssignToUser(ctx context.Context, userID, roleID uint) error {
	user, role, err := s.loadUserAndRole(ctx, userID, roleID)
	if err != nil {
		return err
	}
	return s.userRepo.AddRole(ctx, user, role)
}

// RemoveFromUser removes a role from a user's role set
func (s *RoleService) RemoveFromUser(ctx context.Context, userID, roleID uint) error {
	user, role, err := s.loadUserAndRole(ctx, userID, roleID)
	if err != nil {
		return err
	}
	return s.userRepo.RemoveRole(ctx, user, role)
}

func (s *RoleService) loadUserAndRole(ctx context.Context, userID, roleID uint) (*models.User, *models.Role, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}

	role, err := s.GetByID(ctx, roleID)
	if err != nil {
		return nil, nil, err
	}

	return user, role, nil
}

func validRoleName(name string) bool {
	for _, r := range authz.AllRoles() {
		if r == name {
			return true
		}
	}
	return false
}
