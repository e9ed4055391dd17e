package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mealsnap-backend/models"
)

func intPtr(v int) *int { return &v }

func TestCalorieProgressDashboardBand(t *testing.T) {
	target := intPtr(2000)

	// 80% boundary is inclusive on-track
	assert.Equal(t, ProgressOnTrack, CalorieProgress(1600, target, DashboardBand))
	assert.Equal(t, ProgressUnder, CalorieProgress(1598, target, DashboardBand))
	// 120% boundary is inclusive on-track
	assert.Equal(t, ProgressOnTrack, CalorieProgress(2400, target, DashboardBand))
	assert.Equal(t, ProgressOver, CalorieProgress(2401, target, DashboardBand))

	assert.Equal(t, ProgressUnknown, CalorieProgress(1600, nil, DashboardBand))
	assert.Equal(t, ProgressUnknown, CalorieProgress(1600, intPtr(0), DashboardBand))
}

func TestCalorieProgressGoalBandIsTighter(t *testing.T) {
	target := intPtr(2000)

	// 85% is on track for the dashboard but not for the goal view
	assert.Equal(t, ProgressOnTrack, CalorieProgress(1700, target, DashboardBand))
	assert.Equal(t, ProgressUnder, CalorieProgress(1700, target, GoalBand))

	assert.Equal(t, ProgressOnTrack, CalorieProgress(1800, target, GoalBand))
	assert.Equal(t, ProgressOnTrack, CalorieProgress(2199, target, GoalBand))
	assert.Equal(t, ProgressOver, CalorieProgress(2250, target, GoalBand))
}

func TestCalorieProgressPercent(t *testing.T) {
	assert.InDelta(t, 81.0, CalorieProgressPercent(2100, intPtr(2595)), 0.5)
	assert.Equal(t, 0.0, CalorieProgressPercent(2100, nil))
	assert.Equal(t, 0.0, CalorieProgressPercent(2100, intPtr(0)))
}

func TestGoalStatus(t *testing.T) {
	target := intPtr(2000)

	assert.Equal(t, GoalStatusOnTrack, GoalStatus(GoalLoseWeight, target, 85))
	assert.Equal(t, GoalStatusNeedsAdjustment, GoalStatus(GoalLoseWeight, target, 95))

	assert.Equal(t, GoalStatusOnTrack, GoalStatus(GoalGainWeight, target, 115))
	assert.Equal(t, GoalStatusNeedsAdjustment, GoalStatus(GoalGainWeight, target, 105))

	assert.Equal(t, GoalStatusOnTrack, GoalStatus(GoalMaintainWeight, target, 90))
	assert.Equal(t, GoalStatusOnTrack, GoalStatus(GoalMaintainWeight, target, 110))
	assert.Equal(t, GoalStatusNeedsAdjustment, GoalStatus(GoalMaintainWeight, target, 111))

	// unrecognized goals always need adjustment
	assert.Equal(t, GoalStatusNeedsAdjustment, GoalStatus("get_swole", target, 100))
	assert.Equal(t, GoalStatusNeedsAdjustment, GoalStatus("", target, 100))

	// without a target the status is unknowable
	assert.Equal(t, GoalStatusUnknown, GoalStatus(GoalLoseWeight, nil, 0))
}

func TestGoalRecommendationsAdjustment(t *testing.T) {
	target := intPtr(2000)
	avg := models.NutritionTotals{Calories: 2400, Protein: 60, Fiber: 30}

	recs := GoalRecommendations(GoalLoseWeight, GoalStatusNeedsAdjustment, avg, target)
	assert.Equal(t, []string{
		"Reduce calorie intake by choosing lower-calorie alternatives",
		"Increase vegetable portions and reduce portion sizes",
	}, recs)
}

func TestGoalRecommendationsOnTrackKeepsNutrientChecks(t *testing.T) {
	target := intPtr(2595)
	avg := models.NutritionTotals{Calories: 2100, Protein: 90, Fiber: 20}

	recs := GoalRecommendations(GoalMaintainWeight, GoalStatusOnTrack, avg, target)
	// single affirmation, then the fiber note (20 < 25); protein is fine (90 >= 50)
	assert.Equal(t, []string{
		"Great progress! Keep up the good work",
		"Increase fiber intake with more vegetables, fruits, and whole grains",
	}, recs)
}

func TestGoalRecommendationsUnknownStatus(t *testing.T) {
	avg := models.NutritionTotals{Calories: 0, Protein: 0, Fiber: 0}

	recs := GoalRecommendations(GoalLoseWeight, GoalStatusUnknown, avg, nil)
	// no affirmation and no adjustment advice, just the nutrient checks
	assert.Equal(t, []string{
		"Consider increasing protein intake for better satiety and muscle maintenance",
		"Increase fiber intake with more vegetables, fruits, and whole grains",
	}, recs)
}

func TestGoalRecommendationsGainUnderTarget(t *testing.T) {
	target := intPtr(3000)
	avg := models.NutritionTotals{Calories: 2000, Protein: 80, Fiber: 30}

	recs := GoalRecommendations(GoalGainWeight, GoalStatusNeedsAdjustment, avg, target)
	assert.Equal(t, []string{
		"Increase calorie intake with nutrient-dense foods",
		"Add healthy fats like avocados, nuts, and olive oil",
	}, recs)
}
