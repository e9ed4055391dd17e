package services

import (
	"context"
	"time"

	"mealsnap-backend/models"
	"mealsnap-backend/utils"
)

// DashboardService assembles the read-only home view: today's intake, the
// rolling 7-day averages and the user's derived health numbers. Nothing is
// cached; every call recomputes from storage.
type DashboardService struct {
	meals *MealService
	users *UserService
}

func NewDashboardService(meals *MealService, users *UserService) *DashboardService {
	return &DashboardService{meals: meals, users: users}
}

type DashboardUser struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Profile       models.Profile `json:"profile"`
	BMI           *float64       `json:"bmi"`
	BMICategory   *string        `json:"bmiCategory"`
	BMR           *int           `json:"bmr"`
	DailyCalories *int           `json:"dailyCalories"`
}

type TodaySnapshot struct {
	Meals           int                    `json:"meals"`
	Nutrition       models.NutritionTotals `json:"nutrition"`
	CalorieProgress string                 `json:"calorieProgress"`
}

type WeeklySnapshot struct {
	TotalMeals    int                    `json:"totalMeals"`
	DailyAverages models.NutritionTotals `json:"dailyAverages"`
}

type RecentMeal struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	MealType string    `json:"mealType"`
	Calories float64   `json:"calories"`
	Time     time.Time `json:"time"`
}

type Dashboard struct {
	User        DashboardUser  `json:"user"`
	Today       TodaySnapshot  `json:"today"`
	Weekly      WeeklySnapshot `json:"weekly"`
	RecentMeals []RecentMeal   `json:"recentMeals"`
}

// Dashboard builds the home view as of now. The weekly averages divide by
// the full 7-day calendar span, not by days that have data.
func (s *DashboardService) Dashboard(ctx context.Context, userID uint, now time.Time) (*Dashboard, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	todayMeals, err := s.meals.ListByDateRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	todayTotals := SumMeals(todayMeals)

	weekStart := now.Add(-7 * 24 * time.Hour)
	weeklyMeals, err := s.meals.ListByDateRange(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}
	weeklyAverages := AverageOverCalendarSpan(weeklyMeals, weekStart, now).Rounded()

	bmi := utils.BMI(user.HeightCm, user.WeightKg)
	var bmiCategory *string
	if bmi != nil {
		cat := utils.BMICategory(*bmi)
		bmiCategory = &cat
	}
	bmr := utils.BMR(user.HeightCm, user.WeightKg, user.Age, user.Gender)
	dailyCalories := utils.DailyCalorieTarget(bmr, user.ActivityLevel)

	recent := make([]RecentMeal, 0, 5)
	for i := range todayMeals {
		if i == 5 {
			break
		}
		m := &todayMeals[i]
		recent = append(recent, RecentMeal{
			ID:       m.ID,
			Name:     m.Name,
			MealType: m.Type,
			Calories: m.TotalNutrition().Calories,
			Time:     m.AteAt,
		})
	}

	return &Dashboard{
		User: DashboardUser{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			Profile:       user.Profile(),
			BMI:           bmi,
			BMICategory:   bmiCategory,
			BMR:           bmr,
			DailyCalories: dailyCalories,
		},
		Today: TodaySnapshot{
			Meals:           len(todayMeals),
			Nutrition:       todayTotals,
			CalorieProgress: CalorieProgress(todayTotals.Calories, dailyCalories, DashboardBand),
		},
		Weekly: WeeklySnapshot{
			TotalMeals:    len(weeklyMeals),
			DailyAverages: weeklyAverages,
		},
		RecentMeals: recent,
	}, nil
}
