package services

import "mealsnap-backend/models"

const (
	ProgressUnknown = "unknown"
	ProgressUnder   = "under"
	ProgressOnTrack = "on_track"
	ProgressOver    = "over"

	GoalStatusOnTrack         = "on_track"
	GoalStatusNeedsAdjustment = "needs_adjustment"
	GoalStatusUnknown         = "unknown"

	GoalLoseWeight     = "lose_weight"
	GoalMaintainWeight = "maintain_weight"
	GoalGainWeight     = "gain_weight"
)

// ProgressBand is an inclusive on-track percentage window. Two bands exist
// because the dashboard and the goal-progress view historically classify
// with different tolerances; they are kept as distinct named policies.
type ProgressBand struct {
	Low  float64
	High float64
}

var (
	DashboardBand = ProgressBand{Low: 80, High: 120}
	GoalBand      = ProgressBand{Low: 90, High: 110}
)

// CalorieProgressPercent is actual/target*100, or 0 when no target exists.
func CalorieProgressPercent(actualCalories float64, target *int) float64 {
	if target == nil || *target == 0 {
		return 0
	}
	return actualCalories / float64(*target) * 100
}

// CalorieProgress classifies actual intake against the target under the
// given band. No target means the progress is unknowable.
func CalorieProgress(actualCalories float64, target *int, band ProgressBand) string {
	if target == nil || *target == 0 {
		return ProgressUnknown
	}
	pct := actualCalories / float64(*target) * 100
	switch {
	case pct < band.Low:
		return ProgressUnder
	case pct <= band.High:
		return ProgressOnTrack
	default:
		return ProgressOver
	}
}

// GoalStatus interprets a calorie-progress percent in the direction of the
// stated goal: eating under target is on track for losing, over target for
// gaining, inside GoalBand for maintaining. Unrecognized goals fall through
// to needs_adjustment; a missing target makes the status unknowable.
func GoalStatus(goal string, target *int, progressPercent float64) string {
	if target == nil || *target == 0 {
		return GoalStatusUnknown
	}
	switch {
	case goal == GoalLoseWeight && progressPercent < GoalBand.Low:
		return GoalStatusOnTrack
	case goal == GoalGainWeight && progressPercent > GoalBand.High:
		return GoalStatusOnTrack
	case goal == GoalMaintainWeight && progressPercent >= GoalBand.Low && progressPercent <= GoalBand.High:
		return GoalStatusOnTrack
	default:
		return GoalStatusNeedsAdjustment
	}
}

// GoalRecommendations produces the ordered advice list for a goal-progress
// report: direction-specific adjustment advice (or a single affirmation when
// on track), then the unconditional protein and fiber checks.
func GoalRecommendations(goal, status string, dailyAvg models.NutritionTotals, target *int) []string {
	recs := []string{}

	if status == GoalStatusNeedsAdjustment {
		switch {
		case goal == GoalLoseWeight && target != nil && dailyAvg.Calories > float64(*target):
			recs = append(recs,
				"Reduce calorie intake by choosing lower-calorie alternatives",
				"Increase vegetable portions and reduce portion sizes")
		case goal == GoalGainWeight && target != nil && dailyAvg.Calories < float64(*target):
			recs = append(recs,
				"Increase calorie intake with nutrient-dense foods",
				"Add healthy fats like avocados, nuts, and olive oil")
		case goal == GoalMaintainWeight:
			recs = append(recs, "Adjust portion sizes to better match your daily calorie needs")
		}
	} else if status == GoalStatusOnTrack {
		recs = append(recs, "Great progress! Keep up the good work")
	}

	if dailyAvg.Protein < 50 {
		recs = append(recs, "Consider increasing protein intake for better satiety and muscle maintenance")
	}
	if dailyAvg.Fiber < 25 {
		recs = append(recs, "Increase fiber intake with more vegetables, fruits, and whole grains")
	}
	return recs
}
