package services

import (
	"context"
	"math"
	"strings"

	"mealsnap-backend/models"
)

// FoodResult is one food the analyzer detected, with its nutrition snapshot.
type FoodResult struct {
	Name       string                 `json:"name"`
	Confidence float64                `json:"confidence"`
	Nutrition  models.NutritionTotals `json:"nutrition"`
}

// AnalysisResult is the full analyzer verdict for one image.
type AnalysisResult struct {
	Name          string       `json:"name"`
	DetectedFoods []FoodResult `json:"detectedFoods"`
	Confidence    float64      `json:"confidence"`

	OverallAssessment  string                 `json:"overallAssessment"`
	NutritionalBalance string                 `json:"nutritionalBalance"`
	Recommendations    []string               `json:"recommendations"`
	MacroProteinPct    int                    `json:"-"`
	MacroCarbsPct      int                    `json:"-"`
	MacroFatPct        int                    `json:"-"`
	HealthScore        int                    `json:"healthScore"`
	TotalNutrition     models.NutritionTotals `json:"totalNutrition"`
}

// ImageAnalyzer turns a meal photo into detected foods and a nutrition
// verdict. The aggregation core only depends on this contract, so the mock
// can be swapped for a real vision model without touching the views.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, image []byte, contentType string) (*AnalysisResult, error)
}

// Per-100g-serving reference nutrition for foods the analyzers can name.
var foodNutrition = map[string]models.NutritionTotals{
	"Grilled Chicken":   {Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Fiber: 0, Sugar: 0, Sodium: 74},
	"Brown Rice":        {Calories: 216, Protein: 5, Carbs: 44, Fat: 1.8, Fiber: 3.5, Sugar: 0.7, Sodium: 10},
	"Broccoli":          {Calories: 55, Protein: 3.7, Carbs: 11.2, Fat: 0.6, Fiber: 5.2, Sugar: 2.2, Sodium: 64},
	"Salmon":            {Calories: 208, Protein: 25, Carbs: 0, Fat: 12, Fiber: 0, Sugar: 0, Sodium: 59},
	"Sweet Potato":      {Calories: 162, Protein: 2, Carbs: 37, Fat: 0.2, Fiber: 4, Sugar: 5.7, Sodium: 11},
	"Quinoa":            {Calories: 222, Protein: 8, Carbs: 39, Fat: 3.6, Fiber: 5, Sugar: 1.6, Sodium: 13},
	"Spinach":           {Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.4, Fiber: 2.2, Sugar: 0.4, Sodium: 79},
	"Greek Yogurt":      {Calories: 100, Protein: 17, Carbs: 6, Fat: 0.4, Fiber: 0, Sugar: 4.7, Sodium: 36},
	"Banana":            {Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, Fiber: 3.1, Sugar: 14.4, Sodium: 1},
	"Avocado":           {Calories: 234, Protein: 2.9, Carbs: 12.8, Fat: 21.4, Fiber: 10, Sugar: 1, Sodium: 10},
	"Eggs":              {Calories: 155, Protein: 12.6, Carbs: 1.1, Fat: 11, Fiber: 0, Sugar: 1.1, Sodium: 124},
	"Whole Wheat Bread": {Calories: 247, Protein: 13, Carbs: 41, Fat: 4.2, Fiber: 6, Sugar: 4.3, Sodium: 454},
}

var fallbackNutrition = models.NutritionTotals{Calories: 150, Protein: 10, Carbs: 20, Fat: 5, Fiber: 2, Sugar: 5, Sodium: 50}

// nutritionFor looks up reference nutrition by exact then substring match.
// known reports whether the name matched the table at all.
func nutritionFor(name string) (n models.NutritionTotals, known bool) {
	if n, ok := foodNutrition[name]; ok {
		return n, true
	}
	lower := strings.ToLower(name)
	for key, n := range foodNutrition {
		keyLower := strings.ToLower(key)
		if strings.Contains(lower, keyLower) || strings.Contains(keyLower, lower) {
			return n, true
		}
	}
	return fallbackNutrition, false
}

// mealNameFor classifies detected foods into a display name.
func mealNameFor(foods []FoodResult) string {
	if len(foods) == 0 {
		return "Unknown Meal"
	}
	classes := map[string]bool{}
	limit := len(foods)
	if limit > 3 {
		limit = 3
	}
	for _, f := range foods[:limit] {
		name := strings.ToLower(f.Name)
		switch {
		case containsAny(name, "chicken", "salmon", "eggs", "beef", "pork", "fish"):
			classes["Protein Meal"] = true
		case containsAny(name, "rice", "quinoa", "bread", "pasta", "noodle"):
			classes["Carb-focused Meal"] = true
		case containsAny(name, "broccoli", "spinach", "avocado", "salad", "vegetable"):
			classes["Vegetable Meal"] = true
		default:
			classes["Mixed Meal"] = true
		}
	}
	if len(classes) == 1 {
		for c := range classes {
			return c
		}
	}
	return "Balanced Meal"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// assembleAnalysis derives the verdict shared by every analyzer: totals,
// macro split, balance class, advice and a 0-100 health score.
func assembleAnalysis(foods []FoodResult) *AnalysisResult {
	var totals models.NutritionTotals
	for _, f := range foods {
		totals = totals.Add(f.Nutrition)
	}

	var proteinPct, carbPct, fatPct float64
	if totals.Calories > 0 {
		proteinPct = totals.Protein * 4 / totals.Calories * 100
		carbPct = totals.Carbs * 4 / totals.Calories * 100
		fatPct = totals.Fat * 9 / totals.Calories * 100
	}

	balance := "poor"
	switch {
	case proteinPct >= 20 && proteinPct <= 30 && carbPct >= 40 && carbPct <= 65 && fatPct >= 20 && fatPct <= 35:
		balance = "good"
	case proteinPct >= 15 && proteinPct <= 35 && carbPct >= 30 && carbPct <= 70 && fatPct >= 15 && fatPct <= 40:
		balance = "fair"
	}

	var recs []string
	if proteinPct < 15 {
		recs = append(recs, "Consider adding more protein-rich foods like chicken, fish, eggs, or legumes")
	}
	if carbPct > 70 {
		recs = append(recs, "High carbohydrate content detected. Consider balancing with more vegetables and protein")
	}
	if fatPct > 40 {
		recs = append(recs, "High fat content detected. Consider healthier fat sources like avocados or nuts")
	}
	if totals.Fiber < 5 {
		recs = append(recs, "Low fiber content. Consider adding more vegetables, fruits, or whole grains")
	}
	if totals.Sugar > 30 {
		recs = append(recs, "High sugar content detected. Consider reducing sugary foods and drinks")
	}
	if totals.Sodium > 2000 {
		recs = append(recs, "High sodium content detected. Consider reducing salt and processed foods")
	}
	if len(recs) == 0 {
		recs = append(recs,
			"Great meal composition! Keep up the balanced nutrition",
			"Consider portion control to maintain calorie goals")
	}

	assessment := "This meal could benefit from better nutritional balance."
	switch balance {
	case "good":
		assessment = "This meal has a good nutritional balance with appropriate macro distribution."
	case "fair":
		assessment = "This meal has a fair nutritional balance. Some adjustments could improve it."
	}

	return &AnalysisResult{
		Name:               mealNameFor(foods),
		DetectedFoods:      foods,
		OverallAssessment:  assessment,
		NutritionalBalance: balance,
		Recommendations:    recs,
		MacroProteinPct:    int(math.Round(proteinPct)),
		MacroCarbsPct:      int(math.Round(carbPct)),
		MacroFatPct:        int(math.Round(fatPct)),
		HealthScore:        healthScore(totals, balance),
		TotalNutrition:     totals,
	}
}

func healthScore(n models.NutritionTotals, balance string) int {
	score := 50
	if n.Protein >= 20 && n.Protein <= 40 {
		score += 10
	}
	if n.Carbs >= 30 && n.Carbs <= 60 {
		score += 10
	}
	if n.Fat >= 15 && n.Fat <= 35 {
		score += 10
	}
	if n.Fiber >= 8 {
		score += 10
	}
	if n.Sugar <= 20 {
		score += 5
	}
	if n.Sodium <= 1500 {
		score += 5
	}
	switch balance {
	case "good":
		score += 10
	case "fair":
		score += 5
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
