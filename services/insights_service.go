package services

import (
	"context"
	"math"
	"sort"
	"time"

	"mealsnap-backend/models"
)

// InsightsService derives qualitative guidance from meal history: suggested
// next meals, multi-day health insights and per-meal context.
type InsightsService struct {
	meals *MealService
}

func NewInsightsService(meals *MealService) *InsightsService {
	return &InsightsService{meals: meals}
}

// ---------- Meal recommendations ----------

type MealRecommendation struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

var mealRecommendationCatalog = []MealRecommendation{
	{Type: "balanced_meal", Title: "Try a Balanced Meal", Description: "Based on your recent meals, consider a meal with equal portions of protein, carbs, and vegetables", Confidence: 0.85},
	{Type: "vegetarian_option", Title: "Vegetarian Alternative", Description: "Replace meat with plant-based proteins like lentils, tofu, or beans", Confidence: 0.75},
	{Type: "low_carb", Title: "Low-Carb Option", Description: "Focus on proteins and vegetables while reducing grains and starches", Confidence: 0.70},
	{Type: "high_protein", Title: "High-Protein Meal", Description: "Increase protein intake with chicken, fish, eggs, or Greek yogurt", Confidence: 0.80},
	{Type: "fiber_rich", Title: "Fiber-Rich Meal", Description: "Include more vegetables, fruits, and whole grains for better digestion", Confidence: 0.78},
}

// Recommendations returns the top meal suggestions ordered by confidence,
// with the recent-meal count they were based on.
func (s *InsightsService) Recommendations(ctx context.Context, userID uint, limit int) ([]MealRecommendation, int, error) {
	if limit <= 0 {
		limit = 5
	}
	recent, err := s.meals.ListRecent(ctx, userID, 50)
	if err != nil {
		return nil, 0, err
	}

	recs := make([]MealRecommendation, len(mealRecommendationCatalog))
	copy(recs, mealRecommendationCatalog)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Confidence > recs[j].Confidence })

	if limit < len(recs) {
		recs = recs[:limit]
	}
	return recs, len(recent), nil
}

// ---------- Health insights ----------

type HealthInsightAverages struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	MealsPerDay float64 `json:"mealsPerDay"`
}

type HealthInsights struct {
	DailyAverages HealthInsightAverages `json:"dailyAverages"`
	Achievements  []string              `json:"achievements"`
	Concerns      []string              `json:"concerns"`
	Suggestions   []string              `json:"suggestions"`
}

// History reviews the last `days` days of meals: daily averages over days
// that have data, plus rule-based achievements and concerns.
func (s *InsightsService) History(ctx context.Context, userID uint, days int, now time.Time) (*HealthInsights, error) {
	if days <= 0 {
		days = 7
	}
	now = now.UTC()
	start := now.AddDate(0, 0, -days)

	meals, err := s.meals.ListByDateRange(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}

	out := &HealthInsights{
		Achievements: []string{},
		Concerns:     []string{},
		Suggestions:  []string{},
	}
	if len(meals) == 0 {
		return out, nil
	}

	buckets := BucketByDate(meals)
	dayCount := len(buckets)

	avg := DailyAverage(SumMeals(meals), dayCount).Rounded()
	mealsPerDay := math.Round(float64(len(meals)) / float64(dayCount))

	out.DailyAverages = HealthInsightAverages{
		Calories:    avg.Calories,
		Protein:     avg.Protein,
		Carbs:       avg.Carbs,
		Fat:         avg.Fat,
		MealsPerDay: mealsPerDay,
	}

	if avg.Calories < 1800 {
		out.Concerns = append(out.Concerns, "Average daily calories seem low. Consider consulting with a nutritionist.")
	} else if avg.Calories > 2500 {
		out.Concerns = append(out.Concerns, "Average daily calories seem high. Consider portion control.")
	}

	if avg.Protein < 50 {
		out.Concerns = append(out.Concerns, "Protein intake appears low. Consider adding more protein-rich foods.")
	} else if avg.Protein > 100 {
		out.Achievements = append(out.Achievements, "Good protein intake! You're meeting your daily protein goals.")
	}

	if mealsPerDay >= 3 {
		out.Achievements = append(out.Achievements, "Great meal frequency! Regular meals help maintain energy levels.")
	} else {
		out.Suggestions = append(out.Suggestions, "Consider eating more regularly throughout the day for better energy management.")
	}

	return out, nil
}

// ---------- Per-meal insights ----------

type NutritionComparison struct {
	Current models.NutritionTotals `json:"current"`
	Average models.NutritionTotals `json:"average"`
}

type MealInsights struct {
	NutritionalComparison *NutritionComparison `json:"nutritionalComparison,omitempty"`
	MealPattern           map[string]int       `json:"mealPattern"`
	Suggestions           []string             `json:"suggestions"`
}

// ForMeal puts one meal in the context of the user's history: how it
// compares to their average meal, their meal-type pattern, and targeted
// suggestions for this plate.
func (s *InsightsService) ForMeal(ctx context.Context, userID uint, meal *models.Meal) (*MealInsights, error) {
	history, err := s.meals.ListRecent(ctx, userID, 50)
	if err != nil {
		return nil, err
	}

	out := &MealInsights{
		MealPattern: map[string]int{},
		Suggestions: []string{},
	}

	if len(history) > 1 {
		avg := DailyAverage(SumMeals(history), len(history)).Rounded()
		out.NutritionalComparison = &NutritionComparison{
			Current: meal.TotalNutrition(),
			Average: avg,
		}
	}

	for i := range history {
		out.MealPattern[history[i].Type]++
	}

	if meal.Analysis != nil {
		if meal.Analysis.HealthScore < 60 {
			out.Suggestions = append(out.Suggestions, "Consider adding more vegetables and lean proteins to improve nutritional balance")
		}
		if meal.Analysis.Totals.Calories > 800 {
			out.Suggestions = append(out.Suggestions, "This meal is quite high in calories. Consider portion control for weight management")
		}
		if meal.Analysis.Totals.Protein < 20 {
			out.Suggestions = append(out.Suggestions, "Consider adding protein-rich foods for better satiety and muscle maintenance")
		}
	}

	return out, nil
}
