package services

import (
	"context"
	"log"

	"trip-planner/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupService prunes uploaded images no trip references anymore.
// It runs daily at 03:00.
type CleanupService struct {
	tripRepo    repositories.TripRepository
	fileService *FileService
	cron        *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(tripRepo repositories.TripRepository, fileService *FileService) *CleanupService {
	return &CleanupService{
		tripRepo:    tripRepo,
		fileService: fileService,
		cron:        cron.New(),
	}
}

// Start schedules the cleanup job
func (s *CleanupService) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.RunOnce(context.Background()); err != nil {
			log.Printf("❌ Image cleanup failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Image cleanup job scheduled (daily at 03:00)")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce deletes every stored image that no trip references
func (s *CleanupService) RunOnce(ctx context.Context) error {
	trips, err := s.tripRepo.List(ctx)
	if err != nil {
		return err
	}

	referenced := make(map[string]bool, len(trips))
	for _, trip := range trips {
		if trip.ImageURL != "" {
			referenced[trip.ImageURL] = true
		}
	}

	stored, err := s.fileService.ListStored()
	if err != nil {
		return err
	}

	removed := 0
	for _, name := range stored {
		if referenced[name] {
			continue
		}
		if err := s.fileService.Remove(name); err != nil {
			log.Printf("❌ Failed to remove orphaned image %s: %v", name, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("✅ Image cleanup removed %d orphaned file(s)", removed)
	}
	return nil
}
