package services

import (
	"context"
	"errors"
	"time"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/adapters/persistence/repositories"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/domain"

	"gorm.io/gorm"
)

// ItineraryService handles itinerary item and activity business logic
type ItineraryService struct {
	itineraryRepo repositories.ItineraryRepository
	tripRepo      repositories.TripRepository
}

// NewItineraryService creates a new itinerary service
func NewItineraryService(itineraryRepo repositories.ItineraryRepository, tripRepo repositories.TripRepository) *ItineraryService {
	return &ItineraryService{itineraryRepo: itineraryRepo, tripRepo: tripRepo}
}

// UpdateItineraryItemInput carries a partial update; nil fields are untouched
type UpdateItineraryItemInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location"`
}

// ActivityInput represents activity creation/update input.
// Times are time-of-day strings in HH:MM form.
type ActivityInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// ListForTrip lists the itinerary items of a trip
func (s *ItineraryService) ListForTrip(ctx context.Context, p *authz.Principal, tripID uint) ([]*models.ItineraryItemResponse, error) {
	if err := s.authorizeTrip(ctx, p, tripID); err != nil {
		return nil, err
	}

	items, err := s.itineraryRepo.List(ctx, tripID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ItineraryItemResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToResponse()
	}
	return responses, nil
}

// GetByID gets an itinerary item
func (s *ItineraryService) GetByID(ctx context.Context, p *authz.Principal, id uint) (*models.ItineraryItem, error) {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTrip(ctx, p, item.TripID); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial update to an itinerary item
func (s *ItineraryService) Update(ctx context.Context, p *authz.Principal, id uint, input *UpdateItineraryItemInput) (*models.ItineraryItem, error) {
	item, err := s.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.StartTime != nil {
		item.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		item.EndTime = *input.EndTime
	}
	if input.Location != nil {
		item.Location = *input.Location
	}

	if err := s.itineraryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete deletes an itinerary item together with its activities
func (s *ItineraryService) Delete(ctx context.Context, p *authz.Principal, id uint) error {
	item, err := s.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	return s.itineraryRepo.Delete(ctx, item.ID)
}

// AddActivity adds an activity to an itinerary item
func (s *ItineraryService) AddActivity(ctx context.Context, p *authz.Principal, itemID uint, input *ActivityInput) (*models.Activity, error) {
	item, err := s.GetByID(ctx, p, itemID)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		ItineraryItemID: item.ID,
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
	}

	if err := s.itineraryRepo.AddActivity(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// UpdateActivity updates an activity
func (s *ItineraryService) UpdateActivity(ctx context.Context, p *authz.Principal, activityID uint, input *ActivityInput) (*models.Activity, error) {
	activity, err := s.loadActivity(ctx, p, activityID)
	if err != nil {
		return nil, err
	}

	activity.Title = input.Title
	activity.Description = input.Description
	activity.Location = input.Location
	activity.StartTime = input.StartTime
	activity.EndTime = input.EndTime

	if err := s.itineraryRepo.UpdateActivity(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// DeleteActivity deletes an activity
func (s *ItineraryService) DeleteActivity(ctx context.Context, p *authz.Principal, activityID uint) error {
	activity, err := s.loadActivity(ctx, p, activityID)
	if err != nil {
		return err
	}
	return s.itineraryRepo.DeleteActivity(ctx, activity.ID)
}

func (s *ItineraryService) loadItem(ctx context.Context, id uint) (*models.ItineraryItem, error) {
	item, err := s.itineraryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItineraryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItineraryService) loadActivity(ctx context.Context, p *authz.Principal, id uint) (*models.Activity, error) {
	activity, err := s.itineraryRepo.GetActivity(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}

	item, err := s.loadItem(ctx, activity.ItineraryItemID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTrip(ctx, p, item.TripID); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ItineraryService) authorizeTrip(ctx context.Context, p *authz.Principal, tripID uint) error {
	if p == nil {
		return domain.ErrUnauthorized
	}

	access, err := s.tripRepo.GetAccess(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTripNotFound
		}
		return err
	}

	return authz.CanAccessTrip(p, access)
}
