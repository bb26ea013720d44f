package config

import (
	"log"

	"inkwell/internal/adapters/persistence/models"
	"inkwell/internal/pkg/password"

	"github.com/shopspring/decimal"
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

// Run executes all seeders. Development/testing only; production admins are
// created through a separate process.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.seedDemoCreator(); err != nil {
		log.Printf("⚠️ Demo creator seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@inkwell.press",
		Password: hashedPassword,
		Role:     "admin",
		Status:   "ACTIVE",
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedDemoCreator seeds a demo creator with a monetization profile and a few
// posts so the payout flow can be exercised locally
func (s *Seeder) seedDemoCreator() error {
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", "demo_creator").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("creator123456")
	if err != nil {
		return err
	}

	creator := &models.User{
		Username: "demo_creator",
		Email:    "creator@inkwell.press",
		Password: hashedPassword,
		Role:     "user",
		Status:   "ACTIVE",
	}
	if err := s.db.Create(creator).Error; err != nil {
		return err
	}

	profile := &models.MonetizationProfile{
		UserID:        creator.ID,
		PendingPayout: decimal.NewFromFloat(120.00),
		TotalEarnings: decimal.NewFromFloat(500.00),
	}
	if err := s.db.Create(profile).Error; err != nil {
		return err
	}

	posts := []models.Post{
		{AuthorID: creator.ID, Title: "Getting started with Inkwell", Slug: "getting-started-with-inkwell", ViewCount: 3200},
		{AuthorID: creator.ID, Title: "Writing for an audience", Slug: "writing-for-an-audience", ViewCount: 1800},
	}
	for i := range posts {
		if err := s.db.Create(&posts[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Demo creator created: %s", creator.Username)
	return nil
}
