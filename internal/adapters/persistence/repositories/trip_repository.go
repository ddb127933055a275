package repositories

import (
	"context"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/core/authz"

	"gorm.io/gorm"
)

// tripRepository implements TripRepository interface
type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

// Create creates a new trip
func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

// GetByID gets a trip by ID with owner and collaborators preloaded
func (r *tripRepository) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.WithContext(ctx).
		Preload("Owner.Roles").
		Preload("Collaborators").
		Where("id = ?", id).
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetDetailed gets a trip with the full entity graph preloaded
func (r *tripRepository) GetDetailed(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.WithContext(ctx).
		Preload("Owner.Roles").
		Preload("Collaborators").
		Preload("Itinerary.Activities").
		Preload("BudgetItems").
		Preload("PackingList").
		Preload("Destinations").
		Where("id = ?", id).
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetAccess returns the ownership fact for a trip
func (r *tripRepository) GetAccess(ctx context.Context, id uint) (authz.TripAccess, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).Select("id", "owner_id").Where("id = ?", id).First(&trip).Error; err != nil {
		return authz.TripAccess{}, err
	}

	var collaboratorIDs []uint
	if err := r.db.WithContext(ctx).
		Table("trip_collaborators").
		Where("trip_id = ?", id).
		Pluck("user_id", &collaboratorIDs).Error; err != nil {
		return authz.TripAccess{}, err
	}

	return authz.TripAccess{
		OwnerID:         trip.OwnerID,
		CollaboratorIDs: collaboratorIDs,
	}, nil
}

// List lists all trips
func (r *tripRepository) List(ctx context.Context) ([]*models.Trip, error) {
	var trips []*models.Trip
	err := r.db.WithContext(ctx).
		Preload("Owner.Roles").
		Preload("Collaborators").
		Preload("Itinerary.Activities").
		Find(&trips).Error
	return trips, err
}

// ListForUser lists trips the user owns or collaborates on
func (r *tripRepository) ListForUser(ctx context.Context, userID uint) ([]*models.Trip, error) {
	var trips []*models.Trip
	err := r.db.WithContext(ctx).
		Preload("Owner.Roles").
		Preload("Collaborators").
		Preload("Itinerary.Activities").
		Where("owner_id = ?", userID).
		Or("id IN (?)", r.db.Table("trip_collaborators").Select("trip_id").Where("user_id = ?", userID)).
		Find(&trips).Error
	return trips, err
}

// Update updates a trip
func (r *tripRepository) Update(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

// Delete soft deletes a trip
func (r *tripRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Trip{}, id).Error
}

// AddCollaborator adds a user to the trip's collaborator set
func (r *tripRepository) AddCollaborator(ctx context.Context, trip *models.Trip, user *models.User) error {
	return r.db.WithContext(ctx).Model(trip).Association("Collaborators").Append(user)
}

// RemoveCollaborator removes a user from the trip's collaborator set
func (r *tripRepository) RemoveCollaborator(ctx context.Context, trip *models.Trip, user *models.User) error {
	return r.db.WithContext(ctx).Model(trip).Association("Collaborators").Delete(user)
}
