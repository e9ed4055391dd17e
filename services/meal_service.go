package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mealsnap-backend/models"
)

var ErrMealNotFound = errors.New("meal not found")

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// CreateMealInput is everything needed to persist an analyzed upload.
type CreateMealInput struct {
	Name      string
	Type      string
	Tags      string
	Notes     string
	AteAt     time.Time
	ImageURL  string
	ImagePath string
	Analysis  *AnalysisResult
}

// Create stores the meal, its detected foods and the analysis verdict in one
// transaction. The analysis is written once and never updated afterwards.
func (s *MealService) Create(ctx context.Context, userID uint, in CreateMealInput) (*models.Meal, error) {
	meal := models.Meal{
		UserID:    userID,
		Name:      in.Name,
		Type:      in.Type,
		Tags:      in.Tags,
		Notes:     in.Notes,
		AteAt:     in.AteAt,
		ImageURL:  in.ImageURL,
		ImagePath: in.ImagePath,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		if in.Analysis == nil {
			return nil
		}
		for _, f := range in.Analysis.DetectedFoods {
			food := models.DetectedFood{
				MealID:     meal.ID,
				Name:       f.Name,
				Confidence: f.Confidence,
				Nutrition:  f.Nutrition,
			}
			if err := tx.Create(&food).Error; err != nil {
				return err
			}
		}
		analysis := models.MealAnalysis{
			MealID:             meal.ID,
			OverallAssessment:  in.Analysis.OverallAssessment,
			NutritionalBalance: in.Analysis.NutritionalBalance,
			MacroProteinPct:    in.Analysis.MacroProteinPct,
			MacroCarbsPct:      in.Analysis.MacroCarbsPct,
			MacroFatPct:        in.Analysis.MacroFatPct,
			HealthScore:        in.Analysis.HealthScore,
			Totals:             in.Analysis.TotalNutrition,
		}
		analysis.SetRecommendations(in.Analysis.Recommendations)
		return tx.Create(&analysis).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, meal.ID)
}

// MealFilter narrows and pages the meal listing.
type MealFilter struct {
	Type    string
	From    *time.Time
	To      *time.Time
	Page    int
	Limit   int
	SortAsc bool
}

// List returns one page of the user's meals plus the unpaged match count.
func (s *MealService) List(ctx context.Context, userID uint, f MealFilter) ([]models.Meal, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}

	q := s.db.WithContext(ctx).Model(&models.Meal{}).Where("user_id = ?", userID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.From != nil {
		q = q.Where("ate_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("ate_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "ate_at DESC"
	if f.SortAsc {
		order = "ate_at ASC"
	}

	var meals []models.Meal
	err := q.
		Preload("Foods").
		Preload("Analysis").
		Order(order).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&meals).Error
	return meals, total, err
}

func (s *MealService) Get(ctx context.Context, userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods").
		Preload("Analysis").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// UpdateMealInput edits meal metadata only; the analyzed nutrition is
// immutable once written.
type UpdateMealInput struct {
	Name  *string `json:"name"`
	Type  *string `json:"mealType" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Tags  *string `json:"tags"`
	Notes *string `json:"notes"`
}

func (s *MealService) UpdateMetadata(ctx context.Context, userID, mealID uint, in UpdateMealInput) (*models.Meal, error) {
	meal, err := s.Get(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != "" {
		meal.Name = *in.Name
	}
	if in.Type != nil && *in.Type != "" {
		meal.Type = *in.Type
	}
	if in.Tags != nil {
		meal.Tags = *in.Tags
	}
	if in.Notes != nil {
		meal.Notes = *in.Notes
	}

	if err := s.db.WithContext(ctx).Save(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// Delete removes the meal and its children, returning the stored image path
// so the caller can clean up the uploaded file.
func (s *MealService) Delete(ctx context.Context, userID, mealID uint) (string, error) {
	meal, err := s.Get(ctx, userID, mealID)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.DetectedFood{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealAnalysis{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meal{}, meal.ID).Error
	})
	if err != nil {
		return "", err
	}
	return meal.ImagePath, nil
}

// ListByDateRange fetches meals with from <= ate_at < to, oldest first.
func (s *MealService) ListByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods").
		Preload("Analysis").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at ASC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListRecent(ctx context.Context, userID uint, limit int) ([]models.Meal, error) {
	if limit <= 0 {
		limit = 5
	}
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Preload("Analysis").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Limit(limit).
		Find(&meals).Error
	return meals, err
}
