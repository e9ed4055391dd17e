package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mealsnap-backend/models"
)

// newTestDB opens an in-memory SQLite database keyed by the test name.
// The shared cache keeps the database alive across gorm's pooled
// connections for the duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.DetectedFood{},
		&models.MealAnalysis{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Email:         email,
		Password:      "hashed",
		Name:          "Test User",
		HeightCm:      175,
		WeightKg:      70,
		Age:           30,
		Gender:        "male",
		ActivityLevel: "moderately_active",
		Goal:          "maintain_weight",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedMeal inserts a meal with an analysis carrying the given totals,
// bypassing the analyzer.
func seedMeal(t *testing.T, db *gorm.DB, userID uint, ateAt time.Time, totals models.NutritionTotals) *models.Meal {
	t.Helper()

	meal := models.Meal{
		UserID: userID,
		Name:   "Seeded Meal",
		Type:   "lunch",
		AteAt:  ateAt,
	}
	require.NoError(t, db.Create(&meal).Error)

	analysis := models.MealAnalysis{
		MealID:             meal.ID,
		NutritionalBalance: "fair",
		HealthScore:        60,
		Totals:             totals,
	}
	analysis.SetRecommendations([]string{})
	require.NoError(t, db.Create(&analysis).Error)

	meal.Analysis = &analysis
	return &meal
}
