package utils

import "math"

// activityMultipliers maps activity level enums to their daily-calorie
// multiplier. Unknown or empty levels fall back to sedentary.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extra_active":      1.9,
}

// BMI expects height in centimeters and weight in kilograms and returns the
// body mass index rounded to one decimal, or nil when either input is
// missing (<= 0).
func BMI(heightCm, weightKg float64) *float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return nil
	}
	h := heightCm / 100.0 // to meters
	v := math.Round(weightKg/(h*h)*10) / 10
	return &v
}

// BMR estimates the basal metabolic rate with the Mifflin-St Jeor equation.
// Returns nil unless height, weight, age and gender are all present.
// Non-male genders share the female constant.
func BMR(heightCm, weightKg float64, age int, gender string) *int {
	if heightCm <= 0 || weightKg <= 0 || age <= 0 || gender == "" {
		return nil
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	var v int
	if gender == "male" {
		v = int(math.Round(base + 5))
	} else {
		v = int(math.Round(base - 161))
	}
	return &v
}

// DailyCalorieTarget scales a BMR by the activity multiplier for the given
// level. Nil in, nil out.
func DailyCalorieTarget(bmr *int, activityLevel string) *int {
	if bmr == nil {
		return nil
	}
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	v := int(math.Round(float64(*bmr) * mult))
	return &v
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
