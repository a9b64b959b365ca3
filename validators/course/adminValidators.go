package courseValidator

import (
	"aicareer/middleware"
	"aicareer/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ============ Stack Validators ============

// Details is kept as raw JSON; only id and name are checked.
type CreateStackRequest struct {
	ID          string         `json:"id" validate:"required,max=100"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Details     datatypes.JSON `json:"details"`
}

type UpdateStackRequest struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Details     datatypes.JSON `json:"details"`
}

func CreateStack() fiber.Handler {
	return validators.Body[CreateStackRequest]("validatedStack", "Stack id and name are required.")
}

func UpdateStack() fiber.Handler {
	return validators.Body[UpdateStackRequest]("validatedStack", "Stack name is required.")
}

// ============ User Validators ============

type UpdateUserStatusRequest struct {
	UserIDs []uint `json:"userIds" validate:"required,min=1"`
	Status  string `json:"status" validate:"required,oneof=Active Suspended Banned"`
}

type DeleteUsersRequest struct {
	UserIDs []uint `json:"userIds" validate:"required,min=1"`
}

func UpdateUserStatus() fiber.Handler {
	return validators.Body[UpdateUserStatusRequest]("validatedUsers", "Invalid request.")
}

func DeleteUsers() fiber.Handler {
	return validators.Body[DeleteUsersRequest]("validatedUsers", "Invalid request.")
}

// ============ Pricing Validators ============

type PricingRequest struct {
	Name     string   `json:"name" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Type     string   `json:"type"`
	Features []string `json:"features"`
}

type PricingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=enabled disabled"`
}

func CreatePricing() fiber.Handler {
	return validators.Body[PricingRequest]("validatedPlan", "Plan name and price are required.")
}

func UpdatePricing() fiber.Handler {
	return validators.Body[PricingRequest]("validatedPlan", "Plan name and price are required.")
}

func PricingStatus() fiber.Handler {
	return validators.Body[PricingStatusRequest]("validatedPlan", "Invalid plan status.")
}

// PlanParam checks that :id is a positive integer.
func PlanParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, "Invalid plan id.", map[string]string{"id": "id must be a positive integer"})
		}
		c.Locals("planId", uint(id))
		return c.Next()
	}
}
