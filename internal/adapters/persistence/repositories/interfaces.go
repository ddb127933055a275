package repositories

import (
	"context"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/core/authz"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AddRole(ctx context.Context, user *models.User, role *models.Role) error
	RemoveRole(ctx context.Context, user *models.User, role *models.Role) error
	CountWithRole(ctx context.Context, roleID uint) (int64, error)
}

// RoleRepository defines role repository interface
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Role, error)
}

// TripRepository defines trip repository interface
type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id uint) (*models.Trip, error)
	GetDetailed(ctx context.Context, id uint) (*models.Trip, error)
	// GetAccess returns the ownership fact for a trip, read fresh on
	// every call; callers must not cache it across requests.
	GetAccess(ctx context.Context, id uint) (authz.TripAccess, error)
	List(ctx context.Context) ([]*models.Trip, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	Delete(ctx context.Context, id uint) error
	AddCollaborator(ctx context.Context, trip *models.Trip, user *models.User) error
	RemoveCollaborator(ctx context.Context, trip *models.Trip, user *models.User) error
}

// ItineraryRepository defines itinerary item repository interface
type ItineraryRepository interface {
	Create(ctx context.Context, item *models.ItineraryItem) error
	GetByID(ctx context.Context, id uint) (*models.ItineraryItem, error)
	List(ctx context.Context, tripID uint) ([]*models.ItineraryItem, error)
	Update(ctx context.Context, item *models.ItineraryItem) error
	Delete(ctx context.Context, id uint) error
	AddActivity(ctx context.Context, activity *models.Activity) error
	GetActivity(ctx context.Context, id uint) (*models.Activity, error)
	UpdateActivity(ctx context.Context, activity *models.Activity) error
	DeleteActivity(ctx context.Context, id uint) error
}
