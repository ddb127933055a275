package config

import (
	"log"
	"strings"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Seeding is idempotent: roles and the bootstrap
// admin account are created only if absent.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRoles(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedRoles creates the fixed role set if missing. Roles are reference
// data: read thereafter, never deleted while a user references them.
func (s *Seeder) seedRoles() error {
	for _, name := range authz.AllRoles() {
		var count int64
		if err := s.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		role := &models.Role{
			Name:        name,
			Description: "Default " + strings.ToLower(name) + " role",
		}
		if err := s.db.Create(role).Error; err != nil {
			return err
		}
		log.Printf("✅ Role created: %s", name)
	}
	return nil
}

// seedAdminUser seeds the default admin account.
// In production, rotate this password through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	var adminRole models.Role
	if err := s.db.Where("name = ?", authz.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hashedPassword, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@tripplanner.com",
		Password: hashedPassword,
		Roles:    []models.Role{adminRole},
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
