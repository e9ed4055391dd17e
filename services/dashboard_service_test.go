package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealsnap-backend/models"
)

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "dashboard@test.local")
	meals := NewMealService(db)
	svc := NewDashboardService(meals, NewUserService(db))

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	// three meals today, all before noon so they land in the weekly window too
	for _, hour := range []int{6, 8, 10} {
		seedMeal(t, db, user.ID, time.Date(2024, 5, 15, hour, 0, 0, 0, time.UTC),
			models.NutritionTotals{Calories: 700, Protein: 30, Fiber: 5})
	}
	// one meal earlier in the week
	seedMeal(t, db, user.ID, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		models.NutritionTotals{Calories: 1400, Protein: 60, Fiber: 10})
	// outside the 7-day window entirely
	seedMeal(t, db, user.ID, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		models.NutritionTotals{Calories: 9000})

	d, err := svc.Dashboard(context.Background(), user.ID, now)
	require.NoError(t, err)

	require.NotNil(t, d.User.BMI)
	assert.Equal(t, 22.9, *d.User.BMI)
	require.NotNil(t, d.User.BMICategory)
	assert.Equal(t, "Normal weight", *d.User.BMICategory)
	require.NotNil(t, d.User.BMR)
	assert.Equal(t, 1649, *d.User.BMR)
	require.NotNil(t, d.User.DailyCalories)
	assert.Equal(t, 2556, *d.User.DailyCalories)

	assert.Equal(t, 3, d.Today.Meals)
	assert.Equal(t, 2100.0, d.Today.Nutrition.Calories)
	// 2100 of 2556 is 82.2%, inside the 80-120 dashboard band
	assert.Equal(t, ProgressOnTrack, d.Today.CalorieProgress)

	// 3500 calories over the full 7-day span, not just days with meals
	assert.Equal(t, 4, d.Weekly.TotalMeals)
	assert.Equal(t, 500.0, d.Weekly.DailyAverages.Calories)

	require.Len(t, d.RecentMeals, 3)
	assert.Equal(t, 700.0, d.RecentMeals[0].Calories)
}

func TestDashboardWithoutProfile(t *testing.T) {
	db := newTestDB(t)
	user := models.User{Email: "bare@test.local", Password: "hashed", Name: "Bare"}
	require.NoError(t, db.Create(&user).Error)
	svc := NewDashboardService(NewMealService(db), NewUserService(db))

	d, err := svc.Dashboard(context.Background(), user.ID, time.Now().UTC())
	require.NoError(t, err)

	assert.Nil(t, d.User.BMI)
	assert.Nil(t, d.User.BMICategory)
	assert.Nil(t, d.User.BMR)
	assert.Nil(t, d.User.DailyCalories)
	assert.Equal(t, ProgressUnknown, d.Today.CalorieProgress)
	assert.Empty(t, d.RecentMeals)
}

func TestDashboardUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(NewMealService(db), NewUserService(db))

	_, err := svc.Dashboard(context.Background(), 42, time.Now().UTC())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
