package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mealsnap-backend/middlewares"
	"mealsnap-backend/services"
)

type UserController struct {
	Dashboard *services.DashboardService
	Analytics *services.AnalyticsService
}

func NewUserController(dashboard *services.DashboardService, analytics *services.AnalyticsService) *UserController {
	return &UserController{Dashboard: dashboard, Analytics: analytics}
}

func (h *UserController) GetDashboard(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Dashboard.Dashboard(c.Request.Context(), userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching dashboard data"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserController) GetWeeklyAnalytics(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	weeks, err := strconv.Atoi(c.DefaultQuery("weeks", "1"))
	if err != nil || weeks < 1 || weeks > 52 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weeks must be a positive integer"})
		return
	}

	out, err := h.Analytics.Weekly(c.Request.Context(), userID, weeks, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching weekly analytics"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserController) GetGoalProgress(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	period := c.DefaultQuery("period", "weekly")
	if period != "weekly" && period != "monthly" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be 'weekly' or 'monthly'"})
		return
	}

	out, err := h.Analytics.Progress(c.Request.Context(), userID, period, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching goal progress"})
		return
	}
	c.JSON(http.StatusOK, out)
}
