package services

import (
	"context"
	"errors"
	"log"
	"time"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/adapters/persistence/repositories"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/domain"

	"gorm.io/gorm"
)

// TripService handles trip business logic. Every operation that acts on
// behalf of a user takes the request's principal explicitly; there is no
// ambient current-user state.
type TripService struct {
	tripRepo      repositories.TripRepository
	itineraryRepo repositories.ItineraryRepository
	userRepo      repositories.UserRepository
}

// NewTripService creates a new trip service
func NewTripService(
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	userRepo repositories.UserRepository,
) *TripService {
	return &TripService{
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		userRepo:      userRepo,
	}
}

// CreateTripInput represents trip creation input
type CreateTripInput struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	ImageURL    string    `json:"-"`
}

// ItineraryItemInput represents itinerary item input
type ItineraryItemInput struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
}

// DashboardResponse aggregates everything the current user can see
type DashboardResponse struct {
	User           *models.UserResponse            `json:"user"`
	Trips          []*models.TripResponse          `json:"trips"`
	ItineraryItems []*models.ItineraryItemResponse `json:"itinerary_items"`
	Activities     []models.Activity               `json:"activities"`
	IsAdmin        bool                            `json:"is_admin"`
}

// List lists all trips
func (s *TripService) List(ctx context.Context) ([]*models.Trip, error) {
	return s.tripRepo.List(ctx)
}

// GetByID gets a trip by ID
func (s *TripService) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// ListForPrincipal lists the trips the principal may see: admins see all,
// everyone else sees trips they own or collaborate on.
func (s *TripService) ListForPrincipal(ctx context.Context, p *authz.Principal) ([]*models.TripResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	var trips []*models.Trip
	var err error
	if p.IsAdmin() {
		trips, err = s.tripRepo.List(ctx)
	} else {
		trips, err = s.tripRepo.ListForUser(ctx, p.ID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TripResponse, len(trips))
	for i, trip := range trips {
		responses[i] = trip.ToResponse()
	}
	return responses, nil
}

// GetDetails returns the full trip graph for the principal. The ownership
// fact is read fresh and checked before the graph is loaded.
func (s *TripService) GetDetails(ctx context.Context, p *authz.Principal, tripID uint) (*models.TripResponse, error) {
	if err := s.authorizeTrip(ctx, p, tripID); err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetDetailed(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}
	return trip.ToResponse(), nil
}

// Create creates a trip owned by the principal
func (s *TripService) Create(ctx context.Context, p *authz.Principal, input *CreateTripInput) (*models.Trip, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	trip := &models.Trip{
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		ImageURL:    input.ImageURL,
		OwnerID:     p.ID,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	log.Printf("✅ Trip created: %q by %s", trip.Title, p.Username)
	return trip, nil
}

// Update updates a trip's core fields
func (s *TripService) Update(ctx context.Context, p *authz.Principal, tripID uint, input *CreateTripInput) (*models.Trip, error) {
	if err := s.authorizeTrip(ctx, p, tripID); err != nil {
		return nil, err
	}

	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	trip.Title = input.Title
	trip.Description = input.Description
	trip.StartDate = input.StartDate
	trip.EndDate = input.EndDate
	if input.ImageURL != "" {
		trip.ImageURL = input.ImageURL
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Delete deletes a trip. Only the owner or an admin may delete.
func (s *TripService) Delete(ctx context.Context, p *authz.Principal, tripID uint) error {
	if err := s.authorizeOwner(ctx, p, tripID); err != nil {
		return err
	}
	return s.tripRepo.Delete(ctx, tripID)
}

// AddItineraryItem adds an itinerary item to a trip
func (s *TripService) AddItineraryItem(ctx context.Context, p *authz.Principal, tripID uint, input *ItineraryItemInput) (*models.ItineraryItem, error) {
	if err := s.authorizeTrip(ctx, p, tripID); err != nil {
		return nil, err
	}

	item := &models.ItineraryItem{
		TripID:      tripID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
	}

	if err := s.itineraryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddCollaborator adds a user to the trip's collaborator set.
// Only the owner or an admin may manage collaborators.
func (s *TripService) AddCollaborator(ctx context.Context, p *authz.Principal, tripID, userID uint) error {
	if err := s.authorizeOwner(ctx, p, tripID); err != nil {
		return err
	}

	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.tripRepo.AddCollaborator(ctx, trip, user)
}

// RemoveCollaborator removes a user from the trip's collaborator set
func (s *TripService) RemoveCollaborator(ctx context.Context, p *authz.Principal, tripID, userID uint) error {
	if err := s.authorizeOwner(ctx, p, tripID); err != nil {
		return err
	}

	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.tripRepo.RemoveCollaborator(ctx, trip, user)
}

// ListItineraryItems lists itinerary items across the principal's trips
func (s *TripService) ListItineraryItems(ctx context.Context, p *authz.Principal) ([]*models.ItineraryItemResponse, error) {
	trips, err := s.accessibleTrips(ctx, p)
	if err != nil {
		return nil, err
	}

	var items []*models.ItineraryItemResponse
	for _, trip := range trips {
		for i := range trip.Itinerary {
			items = append(items, trip.Itinerary[i].ToResponse())
		}
	}
	return items, nil
}

// ListActivities lists activities across the principal's trips
func (s *TripService) ListActivities(ctx context.Context, p *authz.Principal) ([]models.Activity, error) {
	trips, err := s.accessibleTrips(ctx, p)
	if err != nil {
		return nil, err
	}

	var activities []models.Activity
	for _, trip := range trips {
		for _, item := range trip.Itinerary {
			activities = append(activities, item.Activities...)
		}
	}
	return activities, nil
}

// Dashboard aggregates the principal's trips, itinerary items, and activities
func (s *TripService) Dashboard(ctx context.Context, p *authz.Principal) (*DashboardResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	trips, err := s.ListForPrincipal(ctx, p)
	if err != nil {
		return nil, err
	}

	items, err := s.ListItineraryItems(ctx, p)
	if err != nil {
		return nil, err
	}

	activities, err := s.ListActivities(ctx, p)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		User:           user.ToResponse(),
		Trips:          trips,
		ItineraryItems: items,
		Activities:     activities,
		IsAdmin:        p.IsAdmin(),
	}, nil
}

// accessibleTrips returns the trips the principal may see, full graph loaded
func (s *TripService) accessibleTrips(ctx context.Context, p *authz.Principal) ([]*models.Trip, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if p.IsAdmin() {
		return s.tripRepo.List(ctx)
	}
	return s.tripRepo.ListForUser(ctx, p.ID)
}

// authorizeTrip applies the ownership rule: admin, owner, or collaborator
func (s *TripService) authorizeTrip(ctx context.Context, p *authz.Principal, tripID uint) error {
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

// authorizeOwner restricts an operation to the trip owner or an admin
func (s *TripService) authorizeOwner(ctx context.Context, p *authz.Principal, tripID uint) error {
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

	if p.IsAdmin() || p.ID == access.OwnerID {
		return nil
	}
	return domain.ErrAccessDenied
}
