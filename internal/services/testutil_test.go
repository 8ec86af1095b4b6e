package services

import (
	"database/sql/driver"
	"sync"
	"testing"
	"time"

	"github.com/sharespace/backend/internal/models"
	"github.com/sharespace/backend/pkg/logger"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testSetupOnce sync.Once

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testSetupOnce.Do(func() {
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC(), nil
		})
		logger.Init()
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Space{},
		&models.CohostLink{},
		&models.Photo{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "irrelevant",
		DisplayName:  "Test User",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating user: %v", err)
	}
	return user
}

func createSpace(t *testing.T, db *gorm.DB, owner *models.User, slug string, isPublic bool) *models.Space {
	t.Helper()

	space := &models.Space{
		Name:     slug,
		Slug:     slug,
		OwnerID:  owner.ID,
		IsPublic: isPublic,
	}
	if err := db.Create(space).Error; err != nil {
		t.Fatalf("failed creating space: %v", err)
	}
	return space
}

func linkCohost(t *testing.T, db *gorm.DB, space *models.Space, user *models.User) {
	t.Helper()

	link := &models.CohostLink{SpaceID: space.ID, CohostID: user.ID}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed creating cohost link: %v", err)
	}
}
