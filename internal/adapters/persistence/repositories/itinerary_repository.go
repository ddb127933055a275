package repositories

import (
	"context"

	"trip-planner/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// itineraryRepository implements ItineraryRepository interface
type itineraryRepository struct {
	db *gorm.DB
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

// Create creates a new itinerary item
func (r *itineraryRepository) Create(ctx context.Context, item *models.ItineraryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID gets an itinerary item by ID with activities preloaded
func (r *itineraryRepository) GetByID(ctx context.Context, id uint) (*models.ItineraryItem, error) {
	var item models.ItineraryItem
	err := r.db.WithContext(ctx).Preload("Activities").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List lists the itinerary items of a trip
func (r *itineraryRepository) List(ctx context.Context, tripID uint) ([]*models.ItineraryItem, error) {
	var items []*models.ItineraryItem
	err := r.db.WithContext(ctx).
		Preload("Activities").
		Where("trip_id = ?", tripID).
		Order("start_time").
		Find(&items).Error
	return items, err
}

// Update updates an itinerary item
func (r *itineraryRepository) Update(ctx context.Context, item *models.ItineraryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes an itinerary item and its activities
func (r *itineraryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("itinerary_item_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ItineraryItem{}, id).Error
	})
}

// AddActivity adds an activity to an itinerary item
func (r *itineraryRepository) AddActivity(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// GetActivity gets an activity by ID
func (r *itineraryRepository) GetActivity(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity updates an activity
func (r *itineraryRepository) UpdateActivity(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

// DeleteActivity deletes an activity
func (r *itineraryRepository) DeleteActivity(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Activity{}, id).Error
}
