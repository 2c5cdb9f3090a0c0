package seed

import (
	"testing"

	"novelshelf/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSeedSocialMesh_CreatesUsersAndFollows(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if migrateErr := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
	); migrateErr != nil {
		t.Fatalf("migrate: %v", migrateErr)
	}

	seeder := NewSeeder(db, Options{SkipBcrypt: true})
	users, err := seeder.SeedSocialMesh(6)
	if err != nil {
		t.Fatalf("seed social mesh: %v", err)
	}
	if len(users) != 6 {
		t.Fatalf("expected 6 seeded users, got %d", len(users))
	}

	// fixed accounts are always present
	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("expected fixed admin account: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatal("fixed admin account should have is_admin set")
	}

	// no self-follow edges
	var selfEdges int64
	if err := db.Model(&models.Follow{}).
		Where("follower_id = following_id").
		Count(&selfEdges).Error; err != nil {
		t.Fatalf("count self edges: %v", err)
	}
	if selfEdges != 0 {
		t.Fatalf("expected no self-follow edges, got %d", selfEdges)
	}
}
