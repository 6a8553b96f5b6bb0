package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipehub/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Favorite{},
		&models.Rating{},
		&models.AIRequest{},
	))

	return db
}

func newTestAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, "test-secret", 30*time.Minute)
}

func createTestUser(t *testing.T, db *gorm.DB, email, userType string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashed),
		UserType:     userType,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string, isPublic bool) *models.Recipe {
	recipe := models.Recipe{
		UserID:      owner.ID,
		Title:       title,
		Description: "A test recipe",
		Ingredients: models.JSONBStringArray{"flour", "water"},
		Steps:       models.JSONBStringArray{"mix", "bake"},
		TimeMinutes: 30,
		Difficulty:  "Easy",
		Tags:        models.JSONBStringArray{"vegetarian"},
		Source:      models.SourceManual,
		IsPublic:    isPublic,
	}
	require.NoError(t, db.Create(&recipe).Error)
	recipe.User = *owner
	return &recipe
}
