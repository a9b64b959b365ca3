package middleware

import (
	"errors"

	"aicareer/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireAdmin must run after JWTMiddleware. Besides the isAdmin claim it
// reloads the user, so a demoted, suspended or deleted admin loses access
// before the token expires.
func RequireAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, KindUnauthorized, "Unauthorized: User ID not found")
		}
		if isAdmin, _ := c.Locals("isAdmin").(bool); !isAdmin {
			return ErrorResponse(c, fiber.StatusForbidden, KindForbidden, "You do not have permission to access this resource!")
		}

		var user models.User
		err := db.WithContext(c.UserContext()).Select("id", "role", "status").First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusForbidden, KindForbidden, "You do not have permission to access this resource!")
		}
		if err != nil {
			return ErrorResponse(c, fiber.StatusInternalServerError, KindInternal, "Server error while checking permissions!")
		}
		if user.Role != models.RoleAdmin || user.Status != models.StatusActive {
			return ErrorResponse(c, fiber.StatusForbidden, KindForbidden, "You do not have permission to access this resource!")
		}
		return c.Next()
	}
}
