package authRoutes

import (
	authControllers "aicareer/controllers/auth"
	authValidators "aicareer/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router, ctrl *authControllers.Controller) {
	api.Post("/signup", authValidators.Signup(), ctrl.Signup)
	api.Post("/login", authValidators.Login(), ctrl.Login)
}
