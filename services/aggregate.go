package services

import (
	"sort"
	"time"

	"mealsnap-backend/models"
)

// Meals are bucketed by UTC calendar day so that rollups are deterministic
// regardless of server timezone.
const dateKeyLayout = "2006-01-02"

// SumMeals reduces a meal list to its field-wise nutrition sum. Meals that
// have no analysis yet contribute the zero vector; no meal is skipped.
func SumMeals(meals []models.Meal) models.NutritionTotals {
	var totals models.NutritionTotals
	for i := range meals {
		totals = totals.Add(meals[i].TotalNutrition())
	}
	return totals
}

// DailyAverage divides totals field-wise by days. A zero day count yields
// the zero vector rather than NaN/Inf.
func DailyAverage(totals models.NutritionTotals, days int) models.NutritionTotals {
	if days <= 0 {
		return models.NutritionTotals{}
	}
	d := float64(days)
	return models.NutritionTotals{
		Calories: totals.Calories / d,
		Protein:  totals.Protein / d,
		Carbs:    totals.Carbs / d,
		Fat:      totals.Fat / d,
		Fiber:    totals.Fiber / d,
		Sugar:    totals.Sugar / d,
		Sodium:   totals.Sodium / d,
	}
}

// DailyBucket groups one UTC calendar day's meals with their summed totals.
// Buckets are derived per request and never persisted.
type DailyBucket struct {
	Date   string
	Meals  []models.Meal
	Totals models.NutritionTotals
}

// BucketByDate groups meals by UTC calendar date keyed "2006-01-02".
func BucketByDate(meals []models.Meal) map[string]DailyBucket {
	buckets := map[string]DailyBucket{}
	for i := range meals {
		key := meals[i].AteAt.UTC().Format(dateKeyLayout)
		b := buckets[key]
		b.Date = key
		b.Meals = append(b.Meals, meals[i])
		b.Totals = b.Totals.Add(meals[i].TotalNutrition())
		buckets[key] = b
	}
	return buckets
}

func sortedBucketDates(buckets map[string]DailyBucket) []string {
	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// CalendarSpanDays is the day count of [from, to), rounded up so a partial
// trailing day still counts as one.
func CalendarSpanDays(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	span := to.Sub(from)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// AverageOverDaysWithData divides the summed totals by the number of
// distinct days that actually have meals.
func AverageOverDaysWithData(meals []models.Meal) models.NutritionTotals {
	return DailyAverage(SumMeals(meals), len(BucketByDate(meals)))
}

// AverageOverCalendarSpan divides by the literal calendar span, counting
// empty days in the divisor.
func AverageOverCalendarSpan(meals []models.Meal, from, to time.Time) models.NutritionTotals {
	return DailyAverage(SumMeals(meals), CalendarSpanDays(from, to))
}
