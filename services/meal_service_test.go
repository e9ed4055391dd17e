package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealsnap-backend/models"
)

func sampleAnalysis() *AnalysisResult {
	foods := []FoodResult{
		{Name: "Grilled Chicken", Confidence: 0.92},
		{Name: "Brown Rice", Confidence: 0.88},
	}
	for i := range foods {
		foods[i].Nutrition, _ = nutritionFor(foods[i].Name)
	}
	result := assembleAnalysis(foods)
	result.Confidence = 0.9
	return result
}

func TestMealServiceCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "create@test.local")
	svc := NewMealService(db)
	ctx := context.Background()

	analysis := sampleAnalysis()
	meal, err := svc.Create(ctx, user.ID, CreateMealInput{
		Name:      "Chicken and Rice",
		Type:      "lunch",
		Tags:      "high-protein",
		AteAt:     time.Date(2024, 5, 15, 12, 30, 0, 0, time.UTC),
		ImageURL:  "/uploads/abc.jpg",
		ImagePath: "uploads/abc.jpg",
		Analysis:  analysis,
	})
	require.NoError(t, err)

	assert.Equal(t, "Chicken and Rice", meal.Name)
	assert.Len(t, meal.Foods, 2)
	require.NotNil(t, meal.Analysis)
	assert.Equal(t, analysis.TotalNutrition, meal.Analysis.Totals)
	assert.Equal(t, analysis.Recommendations, meal.Analysis.Recommendations())
	assert.Equal(t, analysis.HealthScore, meal.Analysis.HealthScore)

	got, err := svc.Get(ctx, user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, meal.ID, got.ID)
	assert.Len(t, got.Foods, 2)
}

func TestMealServiceGetScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@test.local")
	other := seedUser(t, db, "other@test.local")
	svc := NewMealService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, owner.ID, time.Now().UTC(), models.NutritionTotals{Calories: 500})

	_, err := svc.Get(ctx, other.ID, meal.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)

	_, err = svc.Get(ctx, owner.ID, 9999)
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestMealServiceListFilterAndPaging(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "list@test.local")
	svc := NewMealService(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		m := seedMeal(t, db, user.ID, base.Add(time.Duration(i)*24*time.Hour), models.NutritionTotals{Calories: 400})
		if i%2 == 0 {
			require.NoError(t, db.Model(m).Update("type", "breakfast").Error)
		}
	}

	meals, total, err := svc.List(ctx, user.ID, MealFilter{Type: "breakfast"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, meals, 3)
	// default order is newest first
	assert.True(t, meals[0].AteAt.After(meals[1].AteAt))

	page2, total, err := svc.List(ctx, user.ID, MealFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page2, 2)

	from := base.Add(3 * 24 * time.Hour)
	ranged, total, err := svc.List(ctx, user.ID, MealFilter{From: &from})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, ranged, 2)
}

func TestMealServiceUpdateMetadata(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "update@test.local")
	svc := NewMealService(db)
	ctx := context.Background()

	meal := seedMeal(t, db, user.ID, time.Now().UTC(), models.NutritionTotals{Calories: 500})

	name := "Renamed"
	notes := "post-workout"
	updated, err := svc.UpdateMetadata(ctx, user.ID, meal.ID, UpdateMealInput{Name: &name, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "post-workout", updated.Notes)
	// untouched fields keep their stored value
	assert.Equal(t, "lunch", updated.Type)

	empty := ""
	updated, err = svc.UpdateMetadata(ctx, user.ID, meal.ID, UpdateMealInput{Name: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestMealServiceDelete(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "delete@test.local")
	svc := NewMealService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, user.ID, CreateMealInput{
		Name:      "To Delete",
		Type:      "dinner",
		AteAt:     time.Now().UTC(),
		ImagePath: "uploads/gone.jpg",
		Analysis:  sampleAnalysis(),
	})
	require.NoError(t, err)

	path, err := svc.Delete(ctx, user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/gone.jpg", path)

	_, err = svc.Get(ctx, user.ID, created.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)

	var foods int64
	require.NoError(t, db.Model(&models.DetectedFood{}).Where("meal_id = ?", created.ID).Count(&foods).Error)
	assert.EqualValues(t, 0, foods)
}

func TestMealServiceListByDateRange(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "range@test.local")
	svc := NewMealService(db)
	ctx := context.Background()

	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	seedMeal(t, db, user.ID, from.Add(-time.Minute), models.NutritionTotals{Calories: 100})
	inside := seedMeal(t, db, user.ID, from.Add(8*time.Hour), models.NutritionTotals{Calories: 200})
	seedMeal(t, db, user.ID, to, models.NutritionTotals{Calories: 300}) // end is exclusive

	meals, err := svc.ListByDateRange(ctx, user.ID, from, to)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, inside.ID, meals[0].ID)
}
