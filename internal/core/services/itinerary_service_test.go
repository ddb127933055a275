package services

import (
	"context"
	"errors"
	"testing"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/core/domain"
)

func newTestItineraryService(t *testing.T) (*ItineraryService, *stubItineraryRepo, *stubTripRepo) {
	t.Helper()
	itineraryRepo := newStubItineraryRepo()
	tripRepo := newStubTripRepo()
	return NewItineraryService(itineraryRepo, tripRepo), itineraryRepo, tripRepo
}

func TestItineraryGetEnforcesTripOwnership(t *testing.T) {
	svc, itineraryRepo, tripRepo := newTestItineraryService(t)
	trip := seedTrip(t, tripRepo, 1, "Rome")

	item := &models.ItineraryItem{TripID: trip.ID, Title: "Day 1"}
	if err := itineraryRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), userPrincipal(1), item.ID); err != nil {
		t.Errorf("owner error = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), userPrincipal(2), item.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("stranger error = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.GetByID(context.Background(), nil, item.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous error = %v, want ErrUnauthorized", err)
	}
}

func TestItineraryGetMissingItem(t *testing.T) {
	svc, _, _ := newTestItineraryService(t)

	_, err := svc.GetByID(context.Background(), userPrincipal(1), 999)
	if !errors.Is(err, domain.ErrItineraryItemNotFound) {
		t.Errorf("error = %v, want ErrItineraryItemNotFound", err)
	}
}

func TestItineraryPartialUpdate(t *testing.T) {
	svc, itineraryRepo, tripRepo := newTestItineraryService(t)
	trip := seedTrip(t, tripRepo, 1, "Rome")

	item := &models.ItineraryItem{TripID: trip.ID, Title: "Day 1", Location: "Forum"}
	if err := itineraryRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	newTitle := "Day 1: Colosseum"
	updated, err := svc.Update(context.Background(), userPrincipal(1), item.ID, &UpdateItineraryItemInput{
		Title: &newTitle,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("Title = %q, want %q", updated.Title, newTitle)
	}
	// Fields left nil in the patch stay untouched.
	if updated.Location != "Forum" {
		t.Errorf("Location = %q, want Forum", updated.Location)
	}
}

func TestDeleteItemRemovesActivities(t *testing.T) {
	svc, itineraryRepo, tripRepo := newTestItineraryService(t)
	trip := seedTrip(t, tripRepo, 1, "Rome")

	item := &models.ItineraryItem{TripID: trip.ID, Title: "Day 1"}
	if err := itineraryRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	activity, err := svc.AddActivity(context.Background(), userPrincipal(1), item.ID, &ActivityInput{
		Title:     "Colosseum",
		StartTime: "09:00",
		EndTime:   "11:30",
	})
	if err != nil {
		t.Fatalf("AddActivity() error = %v", err)
	}

	if err := svc.Delete(context.Background(), userPrincipal(1), item.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := itineraryRepo.GetActivity(context.Background(), activity.ID); err == nil {
		t.Error("activity survived its itinerary item")
	}
}

func TestActivityOperationsEnforceOwnership(t *testing.T) {
	svc, itineraryRepo, tripRepo := newTestItineraryService(t)
	trip := seedTrip(t, tripRepo, 1, "Rome")

	item := &models.ItineraryItem{TripID: trip.ID, Title: "Day 1"}
	if err := itineraryRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	activity, err := svc.AddActivity(context.Background(), userPrincipal(1), item.ID, &ActivityInput{Title: "Walk"})
	if err != nil {
		t.Fatalf("AddActivity() error = %v", err)
	}

	_, err = svc.UpdateActivity(context.Background(), userPrincipal(2), activity.ID, &ActivityInput{Title: "Hijacked"})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("stranger update error = %v, want ErrAccessDenied", err)
	}

	err = svc.DeleteActivity(context.Background(), userPrincipal(2), activity.ID)
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("stranger delete error = %v, want ErrAccessDenied", err)
	}
}
