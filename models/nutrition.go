package models

import "math"

// NutritionTotals is the additive nutrition vector shared by detected foods,
// meal analyses and every aggregate view. All fields are non-negative.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

func (t NutritionTotals) Add(o NutritionTotals) NutritionTotals {
	return NutritionTotals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
		Fiber:    t.Fiber + o.Fiber,
		Sugar:    t.Sugar + o.Sugar,
		Sodium:   t.Sodium + o.Sodium,
	}
}

// Rounded returns the totals with every field rounded to the nearest whole
// number, matching the precision the averaged views expose.
func (t NutritionTotals) Rounded() NutritionTotals {
	return NutritionTotals{
		Calories: math.Round(t.Calories),
		Protein:  math.Round(t.Protein),
		Carbs:    math.Round(t.Carbs),
		Fat:      math.Round(t.Fat),
		Fiber:    math.Round(t.Fiber),
		Sugar:    math.Round(t.Sugar),
		Sodium:   math.Round(t.Sodium),
	}
}
