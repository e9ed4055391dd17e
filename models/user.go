package models

import (
	"gorm.io/gorm"
)

// User profile fields are optional: a zero height/weight/age or empty string
// means "not provided" and the health calculators return nil for anything
// they cannot derive.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`

	HeightCm      float64 `json:"height"`
	WeightKg      float64 `json:"weight"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`         // male|female|other
	ActivityLevel string  `json:"activity_level"` // sedentary .. extra_active
	Goal          string  `json:"goal"`           // lose_weight|maintain_weight|gain_weight
}

// Profile is the JSON shape of the optional profile block exposed by the API.
type Profile struct {
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activityLevel"`
	Goal          string  `json:"goal"`
}

func (u *User) Profile() Profile {
	return Profile{
		Height:        u.HeightCm,
		Weight:        u.WeightKg,
		Age:           u.Age,
		Gender:        u.Gender,
		ActivityLevel: u.ActivityLevel,
		Goal:          u.Goal,
	}
}
