package services

import (
	"context"
	"math"
	"time"

	"mealsnap-backend/models"
	"mealsnap-backend/utils"
)

// AnalyticsService computes the rollup views: per-day series with weekly
// averages, the single-day breakdown and goal progress. All rollups are
// pure reductions over a fresh snapshot of the user's meals.
type AnalyticsService struct {
	meals *MealService
	users *UserService
}

func NewAnalyticsService(meals *MealService, users *UserService) *AnalyticsService {
	return &AnalyticsService{meals: meals, users: users}
}

// ---------- Weekly / monthly series ----------

type Period struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	TotalDays int    `json:"totalDays"`
}

type DaySeries struct {
	Date      string                 `json:"date"`
	MealCount int                    `json:"mealCount"`
	Totals    models.NutritionTotals `json:"totals"`
}

type WeeklyAnalytics struct {
	Period         Period                 `json:"period"`
	DailyData      []DaySeries            `json:"dailyData"`
	WeeklyAverages models.NutritionTotals `json:"weeklyAverages"`
	WeeklyTotals   models.NutritionTotals `json:"weeklyTotals"`
}

// Weekly reports the last weeksBack*7 days as a per-day series. The averages
// divide by days that actually have meals, so sparse logging does not dilute
// them; TotalDays is that same count.
func (s *AnalyticsService) Weekly(ctx context.Context, userID uint, weeksBack int, now time.Time) (*WeeklyAnalytics, error) {
	if weeksBack <= 0 {
		weeksBack = 1
	}
	now = now.UTC()
	start := now.AddDate(0, 0, -weeksBack*7)

	meals, err := s.meals.ListByDateRange(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}

	buckets := BucketByDate(meals)
	series := make([]DaySeries, 0, len(buckets))
	for _, date := range sortedBucketDates(buckets) {
		b := buckets[date]
		series = append(series, DaySeries{
			Date:      b.Date,
			MealCount: len(b.Meals),
			Totals:    b.Totals,
		})
	}

	totals := SumMeals(meals)
	return &WeeklyAnalytics{
		Period: Period{
			StartDate: start.Format(dateKeyLayout),
			EndDate:   now.Format(dateKeyLayout),
			TotalDays: len(buckets),
		},
		DailyData:      series,
		WeeklyAverages: DailyAverage(totals, len(buckets)).Rounded(),
		WeeklyTotals:   totals,
	}, nil
}

// ---------- Single-day breakdown ----------

type MealSummary struct {
	ID        uint                   `json:"id"`
	Name      string                 `json:"name"`
	MealType  string                 `json:"mealType"`
	Nutrition models.NutritionTotals `json:"nutrition"`
	Time      time.Time              `json:"time"`
}

type DailyAnalytics struct {
	Date            string                 `json:"date"`
	TotalMeals      int                    `json:"totalMeals"`
	NutritionTotals models.NutritionTotals `json:"nutritionTotals"`
	Meals           []MealSummary          `json:"meals"`
}

// Daily breaks one UTC calendar day down into its meals and summed totals.
func (s *AnalyticsService) Daily(ctx context.Context, userID uint, date time.Time) (*DailyAnalytics, error) {
	date = date.UTC()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	meals, err := s.meals.ListByDateRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	summaries := make([]MealSummary, 0, len(meals))
	for i := range meals {
		m := &meals[i]
		summaries = append(summaries, MealSummary{
			ID:        m.ID,
			Name:      m.Name,
			MealType:  m.Type,
			Nutrition: m.TotalNutrition(),
			Time:      m.AteAt,
		})
	}

	return &DailyAnalytics{
		Date:            dayStart.Format(dateKeyLayout),
		TotalMeals:      len(meals),
		NutritionTotals: SumMeals(meals),
		Meals:           summaries,
	}, nil
}

// ---------- Goal progress ----------

type GoalSummary struct {
	DailyCalories *int   `json:"dailyCalories"`
	Goal          string `json:"goal"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
}

type ActualIntake struct {
	TotalMeals    int                    `json:"totalMeals"`
	DailyAverages models.NutritionTotals `json:"dailyAverages"`
	Totals        models.NutritionTotals `json:"totals"`
}

type GoalProgress struct {
	Period          string       `json:"period"`
	Goals           GoalSummary  `json:"goals"`
	Actual          ActualIntake `json:"actual"`
	Recommendations []string     `json:"recommendations"`
}

// Progress evaluates the last week or month of intake against the user's
// calorie target and stated goal. Daily averages divide by the literal
// calendar span here, empty days included.
func (s *AnalyticsService) Progress(ctx context.Context, userID uint, period string, now time.Time) (*GoalProgress, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	start := now.AddDate(0, 0, -7)
	if period == "monthly" {
		start = now.AddDate(0, -1, 0)
	} else {
		period = "weekly"
	}

	meals, err := s.meals.ListByDateRange(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}

	totals := SumMeals(meals)
	dailyAvg := AverageOverCalendarSpan(meals, start, now).Rounded()

	bmr := utils.BMR(user.HeightCm, user.WeightKg, user.Age, user.Gender)
	target := utils.DailyCalorieTarget(bmr, user.ActivityLevel)

	pct := CalorieProgressPercent(dailyAvg.Calories, target)
	status := GoalStatus(user.Goal, target, pct)

	return &GoalProgress{
		Period: period,
		Goals: GoalSummary{
			DailyCalories: target,
			Goal:          user.Goal,
			Status:        status,
			Progress:      int(math.Round(pct)),
		},
		Actual: ActualIntake{
			TotalMeals:    len(meals),
			DailyAverages: dailyAvg,
			Totals:        totals,
		},
		Recommendations: GoalRecommendations(user.Goal, status, dailyAvg, target),
	}, nil
}
