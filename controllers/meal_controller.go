package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mealsnap-backend/middlewares"
	"mealsnap-backend/services"
	"mealsnap-backend/utils"
)

const maxImageBytes = 10 << 20 // 10 MB

var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

type MealController struct {
	Meals     *services.MealService
	Analytics *services.AnalyticsService
	Insights  *services.InsightsService
	Analyzer  services.ImageAnalyzer
	Images    utils.ImageStore
	Log       *logrus.Logger
}

func NewMealController(
	meals *services.MealService,
	analytics *services.AnalyticsService,
	insights *services.InsightsService,
	analyzer services.ImageAnalyzer,
	images utils.ImageStore,
	log *logrus.Logger,
) *MealController {
	return &MealController{
		Meals:     meals,
		Analytics: analytics,
		Insights:  insights,
		Analyzer:  analyzer,
		Images:    images,
		Log:       log,
	}
}

func (h *MealController) readImage(c *gin.Context) ([]byte, string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return nil, "", false
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large (max 10MB)"})
		return nil, "", false
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return nil, "", false
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to process uploaded file"})
		return nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to process uploaded file"})
		return nil, "", false
	}
	return data, contentType, true
}

// Upload analyzes a meal photo, stores the image and persists the meal with
// its nutrition verdict.
func (h *MealController) Upload(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	mealType := c.PostForm("mealType")
	if !validMealTypes[mealType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mealType must be breakfast, lunch, dinner or snack"})
		return
	}

	data, contentType, ok := h.readImage(c)
	if !ok {
		return
	}

	ateAt := time.Now().UTC()
	if v := c.PostForm("date"); v != "" {
		parsed, err := parseMealDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		ateAt = parsed
	}

	analysis, err := h.Analyzer.Analyze(c.Request.Context(), data, contentType)
	if err != nil {
		h.Log.WithError(err).Warn("image analysis failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service temporarily unavailable"})
		return
	}

	url, path, err := h.Images.Save(c.Request.Context(), data, contentType)
	if err != nil {
		h.Log.WithError(err).Error("image store failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to store uploaded image"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = analysis.Name
	}

	meal, err := h.Meals.Create(c.Request.Context(), userID, services.CreateMealInput{
		Name:      name,
		Type:      mealType,
		Tags:      normalizeTags(c.PostForm("tags")),
		Notes:     c.PostForm("notes"),
		AteAt:     ateAt,
		ImageURL:  url,
		ImagePath: path,
		Analysis:  analysis,
	})
	if err != nil {
		h.Log.WithError(err).Error("meal create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during meal analysis"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Meal analyzed successfully",
		"meal":    meal,
	})
}

// AnalyzeImage runs the analyzer without persisting anything.
func (h *MealController) AnalyzeImage(c *gin.Context) {
	if _, ok := middlewares.UserIDFromCtx(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	data, contentType, ok := h.readImage(c)
	if !ok {
		return
	}

	analysis, err := h.Analyzer.Analyze(c.Request.Context(), data, contentType)
	if err != nil {
		h.Log.WithError(err).Warn("image analysis failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image analyzed successfully",
		"analysis": analysis,
	})
}

func (h *MealController) List(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// clamp before computing the pagination envelope: a zero limit would
	// divide by zero below
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	filter := services.MealFilter{
		Type:    c.Query("mealType"),
		Page:    page,
		Limit:   limit,
		SortAsc: c.DefaultQuery("sortOrder", "desc") == "asc",
	}
	if v := c.Query("startDate"); v != "" {
		t, err := parseMealDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		filter.From = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseMealDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		filter.To = &t
	}

	meals, total, err := h.Meals.List(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching meals"})
		return
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	c.JSON(http.StatusOK, gin.H{
		"meals": meals,
		"pagination": gin.H{
			"currentPage": filter.Page,
			"totalPages":  totalPages,
			"totalMeals":  total,
			"hasNext":     filter.Page < totalPages,
			"hasPrev":     filter.Page > 1,
		},
	})
}

func (h *MealController) Get(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := mealIDParam(c)
	if !ok {
		return
	}

	meal, err := h.Meals.Get(c.Request.Context(), userID, mealID)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching meal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (h *MealController) Update(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := mealIDParam(c)
	if !ok {
		return
	}

	var input services.UpdateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.Meals.UpdateMetadata(c.Request.Context(), userID, mealID, input)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Meal updated successfully",
		"meal":    meal,
	})
}

func (h *MealController) Delete(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := mealIDParam(c)
	if !ok {
		return
	}

	imagePath, err := h.Meals.Delete(c.Request.Context(), userID, mealID)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting meal"})
		return
	}

	if err := h.Images.Remove(c.Request.Context(), imagePath); err != nil {
		h.Log.WithError(err).Warn("failed to remove meal image")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully"})
}

func (h *MealController) DailyAnalytics(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		parsed, err := parseMealDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		date = parsed
	}

	out, err := h.Analytics.Daily(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching daily analytics"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealController) Recommendations(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	recs, basedOn, err := h.Insights.Recommendations(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"basedOn":         strconv.Itoa(basedOn) + " recent meals",
	})
}

func (h *MealController) HealthInsights(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	insights, err := h.Insights.History(c.Request.Context(), userID, days, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching health insights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":   strconv.Itoa(days) + " days",
		"insights": insights,
	})
}

// MealAnalysis returns one meal with its history context.
func (h *MealController) MealAnalysis(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := mealIDParam(c)
	if !ok {
		return
	}

	meal, err := h.Meals.Get(c.Request.Context(), userID, mealID)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching meal analysis"})
		return
	}

	insights, err := h.Insights.ForMeal(c.Request.Context(), userID, meal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching meal analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal":     meal,
		"insights": insights,
	})
}

// --- helpers ---

func mealIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return 0, false
	}
	return uint(id), true
}

func parseMealDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func normalizeTags(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ", ")
}
