package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealsnap-backend/models"
)

func TestRecommendationsOrderedByConfidence(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "recs@test.local")
	svc := NewInsightsService(NewMealService(db))

	seedMeal(t, db, user.ID, time.Now().UTC().Add(-time.Hour), models.NutritionTotals{Calories: 500})

	recs, basedOn, err := svc.Recommendations(context.Background(), user.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, basedOn)
	require.Len(t, recs, 3)
	assert.Equal(t, "balanced_meal", recs[0].Type)
	assert.Equal(t, "high_protein", recs[1].Type)
	assert.Equal(t, "fiber_rich", recs[2].Type)
}

func TestHistoryInsightRules(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "history@test.local")
	svc := NewInsightsService(NewMealService(db))

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	// two days of data, three meals each, low calories and low protein
	for day := 1; day <= 2; day++ {
		for _, hour := range []int{8, 13, 19} {
			seedMeal(t, db, user.ID, now.AddDate(0, 0, -day).Add(time.Duration(hour-12)*time.Hour),
				models.NutritionTotals{Calories: 400, Protein: 10})
		}
	}

	got, err := svc.History(context.Background(), user.ID, 7, now)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, got.DailyAverages.Calories)
	assert.Equal(t, 30.0, got.DailyAverages.Protein)
	assert.Equal(t, 3.0, got.DailyAverages.MealsPerDay)

	assert.Contains(t, got.Concerns, "Average daily calories seem low. Consider consulting with a nutritionist.")
	assert.Contains(t, got.Concerns, "Protein intake appears low. Consider adding more protein-rich foods.")
	assert.Contains(t, got.Achievements, "Great meal frequency! Regular meals help maintain energy levels.")
	assert.Empty(t, got.Suggestions)
}

func TestHistoryEmpty(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "history-empty@test.local")
	svc := NewInsightsService(NewMealService(db))

	got, err := svc.History(context.Background(), user.ID, 7, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, HealthInsightAverages{}, got.DailyAverages)
	assert.Empty(t, got.Concerns)
	assert.Empty(t, got.Achievements)
}

func TestForMealSuggestions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "formeal@test.local")
	svc := NewInsightsService(NewMealService(db))
	now := time.Now().UTC()

	seedMeal(t, db, user.ID, now.Add(-3*time.Hour), models.NutritionTotals{Calories: 600, Protein: 40})
	heavy := seedMeal(t, db, user.ID, now.Add(-time.Hour), models.NutritionTotals{Calories: 900, Protein: 10})
	heavy.Analysis.HealthScore = 40

	got, err := svc.ForMeal(context.Background(), user.ID, heavy)
	require.NoError(t, err)

	require.NotNil(t, got.NutritionalComparison)
	assert.Equal(t, 900.0, got.NutritionalComparison.Current.Calories)
	assert.Equal(t, 2, got.MealPattern["lunch"])

	assert.Equal(t, []string{
		"Consider adding more vegetables and lean proteins to improve nutritional balance",
		"This meal is quite high in calories. Consider portion control for weight management",
		"Consider adding protein-rich foods for better satiety and muscle maintenance",
	}, got.Suggestions)
}
