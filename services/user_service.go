package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mealsnap-backend/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ProfileUpdateInput carries a partial profile update; nil fields keep the
// stored value. Enum values are validated at the binding layer.
type ProfileUpdateInput struct {
	Name          *string  `json:"name"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	Age           *int     `json:"age"`
	Gender        *string  `json:"gender" binding:"omitempty,oneof=male female other"`
	ActivityLevel *string  `json:"activityLevel" binding:"omitempty,oneof=sedentary lightly_active moderately_active very_active extra_active"`
	Goal          *string  `json:"goal" binding:"omitempty,oneof=lose_weight maintain_weight gain_weight"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Height != nil {
		user.HeightCm = *input.Height
	}
	if input.Weight != nil {
		user.WeightKg = *input.Weight
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.ActivityLevel != nil {
		user.ActivityLevel = *input.ActivityLevel
	}
	if input.Goal != nil {
		user.Goal = *input.Goal
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
