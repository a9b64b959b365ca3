package authValidator

import (
	"aicareer/validators"

	"github.com/gofiber/fiber/v2"
)

const missingFields = "Please enter all fields."

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup validator middleware
func Signup() fiber.Handler {
	return validators.Body[SignupRequest]("validatedUser", missingFields)
}

// Login validator middleware
func Login() fiber.Handler {
	return validators.Body[LoginRequest]("validatedUser", missingFields)
}
