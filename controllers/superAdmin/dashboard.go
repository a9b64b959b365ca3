package superAdminController

import (
	"aicareer/middleware"
	"aicareer/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Dashboard returns user, stack and revenue totals for the admin console.
func (ac *Controller) Dashboard(c *fiber.Ctx) error {
	db := ac.db.WithContext(c.UserContext())
	clock := now.With(ac.now())
	today := clock.BeginningOfDay()
	weekStart := clock.BeginningOfWeek()

	var totalUsers, totalStacks, signupsToday, signupsThisWeek, activeToday int64
	var totalRevenue float64
	userStats := []statusCount{}

	queries := []func() error{
		func() error { return db.Model(&models.User{}).Count(&totalUsers).Error },
		func() error { return db.Model(&models.Stack{}).Count(&totalStacks).Error },
		func() error {
			return db.Model(&models.PricingPlan{}).
				Where("status = ?", models.PlanEnabled).
				Select("COALESCE(SUM(price), 0)").
				Scan(&totalRevenue).Error
		},
		func() error {
			return db.Model(&models.User{}).
				Select("status, COUNT(*) AS count").
				Group("status").
				Order("status").
				Scan(&userStats).Error
		},
		func() error {
			return db.Model(&models.User{}).Where("created_at >= ?", today).Count(&signupsToday).Error
		},
		func() error {
			return db.Model(&models.User{}).Where("created_at >= ?", weekStart).Count(&signupsThisWeek).Error
		},
		func() error {
			return db.Model(&models.User{}).Where("last_login >= ?", today).Count(&activeToday).Error
		},
	}
	for _, q := range queries {
		if err := q(); err != nil {
			ac.log.Error("Dashboard API Error", "error", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch dashboard stats.")
		}
	}

	return c.JSON(fiber.Map{
		"totalUsers":      totalUsers,
		"totalStacks":     totalStacks,
		"totalRevenue":    totalRevenue,
		"userStats":       userStats,
		"signupsToday":    signupsToday,
		"signupsThisWeek": signupsThisWeek,
		"activeToday":     activeToday,
	})
}
