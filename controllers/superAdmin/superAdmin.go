package superAdminController

import (
	"fmt"
	"time"

	"aicareer/logger"
	"aicareer/middleware"
	"aicareer/models"
	courseValidator "aicareer/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller serves the admin console: dashboard, users and pricing.
type Controller struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewController(db *gorm.DB, log *logger.Logger) *Controller {
	return &Controller{db: db, log: log.With("component", "admin"), now: time.Now}
}

type userRow struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	Plan      string     `json:"plan"`
	Role      string     `json:"role"`
	Points    int        `json:"points"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

func (ac *Controller) UserList(c *fiber.Ctx) error {
	users := []userRow{}
	err := ac.db.WithContext(c.UserContext()).
		Model(&models.User{}).
		Select("id, name, email, status, plan, role, points, last_login, created_at").
		Order("id").
		Scan(&users).Error
	if err != nil {
		ac.log.Error("Fetch Users API Error", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch users.")
	}
	return c.JSON(users)
}

// UpdateUserStatus sets the status of several users at once
func (ac *Controller) UpdateUserStatus(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUsers").(*courseValidator.UpdateUserStatusRequest)

	res := ac.db.WithContext(c.UserContext()).
		Model(&models.User{}).
		Where("id IN ?", reqData.UserIDs).
		Update("status", reqData.Status)
	if res.Error != nil {
		ac.log.Error("Failed to update user status", "error", res.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to update user status.")
	}
	return middleware.MessageResponse(c, fiber.StatusOK, fmt.Sprintf("Successfully updated %d users.", res.RowsAffected))
}

// DeleteUsers removes users together with their progress and login history
func (ac *Controller) DeleteUsers(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUsers").(*courseValidator.DeleteUsersRequest)

	var deleted int64
	err := ac.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN ?", reqData.UserIDs).Delete(&models.UserProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", reqData.UserIDs).Delete(&models.LoginTracking{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", reqData.UserIDs).Delete(&models.User{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		ac.log.Error("Failed to delete users", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to delete users.")
	}
	return middleware.MessageResponse(c, fiber.StatusOK, fmt.Sprintf("Successfully deleted %d users.", deleted))
}

// LoginHistoryList returns the most recent logins of one user
func (ac *Controller) LoginHistoryList(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.KindValidation, "Invalid user id.")
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	history := []models.LoginTracking{}
	err = ac.db.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		ac.log.Error("Failed to fetch login history", "user_id", userID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch login history.")
	}
	return c.JSON(history)
}
