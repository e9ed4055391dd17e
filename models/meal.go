package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/dinner/snack). Nutrition is immutable once the
// analysis is written; only name/type/tags/notes are editable afterwards.
type Meal struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `gorm:"index" json:"meal_type"` // breakfast|lunch|dinner|snack
	ImageURL  string    `json:"image_url"`
	ImagePath string    `json:"-"`
	Tags      string    `json:"tags"` // comma-separated
	Notes     string    `json:"notes"`
	AteAt     time.Time `gorm:"index" json:"date"`

	Foods    []DetectedFood `json:"detectedFoods"`
	Analysis *MealAnalysis  `json:"aiAnalysis"`
}

// DetectedFood is one line item the analyzer found in the meal image,
// with its own nutrition snapshot.
type DetectedFood struct {
	gorm.Model
	MealID     uint    `gorm:"index;not null" json:"-"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`

	Nutrition NutritionTotals `gorm:"embedded" json:"nutrition"`
}

// MealAnalysis stores the analyzer verdict for a meal: the summed nutrition,
// macro split and the generated advice.
type MealAnalysis struct {
	gorm.Model
	MealID uint `gorm:"uniqueIndex;not null" json:"-"`

	OverallAssessment  string `json:"overallAssessment"`
	NutritionalBalance string `json:"nutritionalBalance"` // good|fair|poor
	RecommendationsRaw string `gorm:"column:recommendations" json:"-"`
	MacroProteinPct    int    `json:"-"`
	MacroCarbsPct      int    `json:"-"`
	MacroFatPct        int    `json:"-"`
	HealthScore        int    `json:"healthScore"`

	Totals NutritionTotals `gorm:"embedded;embeddedPrefix:total_" json:"totalNutrition"`
}

// Recommendations decodes the stored advice list. A corrupt or empty column
// yields an empty slice, never an error.
func (a *MealAnalysis) Recommendations() []string {
	var recs []string
	if err := json.Unmarshal([]byte(a.RecommendationsRaw), &recs); err != nil {
		return []string{}
	}
	return recs
}

func (a *MealAnalysis) SetRecommendations(recs []string) {
	raw, err := json.Marshal(recs)
	if err != nil {
		raw = []byte("[]")
	}
	a.RecommendationsRaw = string(raw)
}

// MarshalJSON adds the decoded recommendations and macro distribution to the
// wire form so consumers see the same shape the analyzer produced.
func (a *MealAnalysis) MarshalJSON() ([]byte, error) {
	type alias MealAnalysis
	return json.Marshal(struct {
		*alias
		Recommendations   []string       `json:"recommendations"`
		MacroDistribution map[string]int `json:"macroDistribution"`
	}{
		alias:           (*alias)(a),
		Recommendations: a.Recommendations(),
		MacroDistribution: map[string]int{
			"protein": a.MacroProteinPct,
			"carbs":   a.MacroCarbsPct,
			"fat":     a.MacroFatPct,
		},
	})
}

// TotalNutrition returns the analyzed totals for a meal, or the zero vector
// when the meal has no analysis yet. Aggregators rely on this never failing.
func (m *Meal) TotalNutrition() NutritionTotals {
	if m.Analysis == nil {
		return NutritionTotals{}
	}
	return m.Analysis.Totals
}
