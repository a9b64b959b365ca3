package superAdminController

import (
	"aicareer/middleware"
	"aicareer/models"
	courseValidator "aicareer/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func (ac *Controller) PricingList(c *fiber.Ctx) error {
	plans := []models.PricingPlan{}
	if err := ac.db.WithContext(c.UserContext()).Order("id").Find(&plans).Error; err != nil {
		ac.log.Error("Failed to fetch pricing plans", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch pricing plans.")
	}
	return c.JSON(plans)
}

// CreatePricing adds a plan. New plans start enabled.
func (ac *Controller) CreatePricing(c *fiber.Ctx) error {
	reqData := c.Locals("validatedPlan").(*courseValidator.PricingRequest)

	plan := models.PricingPlan{
		Name:     reqData.Name,
		Price:    *reqData.Price,
		Type:     reqData.Type,
		Features: featureList(reqData.Features),
		Status:   models.PlanEnabled,
	}
	if err := ac.db.WithContext(c.UserContext()).Create(&plan).Error; err != nil {
		ac.log.Error("Failed to create plan", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to create plan.")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Pricing plan created successfully.",
		"id":      plan.ID,
	})
}

func (ac *Controller) UpdatePricing(c *fiber.Ctx) error {
	planID := c.Locals("planId").(uint)
	reqData := c.Locals("validatedPlan").(*courseValidator.PricingRequest)

	res := ac.db.WithContext(c.UserContext()).
		Model(&models.PricingPlan{}).
		Where("id = ?", planID).
		Updates(map[string]interface{}{
			"name":     reqData.Name,
			"price":    *reqData.Price,
			"type":     reqData.Type,
			"features": featureList(reqData.Features),
		})
	if res.Error != nil {
		ac.log.Error("Failed to update plan", "plan_id", planID, "error", res.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to update plan.")
	}
	if res.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Pricing plan not found.")
	}
	return middleware.MessageResponse(c, fiber.StatusOK, "Pricing plan updated.")
}

func (ac *Controller) UpdatePricingStatus(c *fiber.Ctx) error {
	planID := c.Locals("planId").(uint)
	reqData := c.Locals("validatedPlan").(*courseValidator.PricingStatusRequest)

	res := ac.db.WithContext(c.UserContext()).
		Model(&models.PricingPlan{}).
		Where("id = ?", planID).
		Update("status", reqData.Status)
	if res.Error != nil {
		ac.log.Error("Failed to update plan status", "plan_id", planID, "error", res.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to update plan status.")
	}
	if res.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Pricing plan not found.")
	}
	return middleware.MessageResponse(c, fiber.StatusOK, "Plan status updated.")
}

func (ac *Controller) DeletePricing(c *fiber.Ctx) error {
	planID := c.Locals("planId").(uint)

	res := ac.db.WithContext(c.UserContext()).Delete(&models.PricingPlan{}, planID)
	if res.Error != nil {
		ac.log.Error("Failed to delete plan", "plan_id", planID, "error", res.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to delete plan.")
	}
	if res.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Pricing plan not found.")
	}
	return middleware.MessageResponse(c, fiber.StatusOK, "Pricing plan deleted.")
}

func featureList(features []string) datatypes.JSONSlice[string] {
	if features == nil {
		features = []string{}
	}
	return datatypes.JSONSlice[string](features)
}
