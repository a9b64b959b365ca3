package superAdminRoutes

import (
	superAdminController "aicareer/controllers/superAdmin"
	validators "aicareer/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupSuperAdminRoutes(admin fiber.Router, ctrl *superAdminController.Controller) {
	admin.Get("/dashboard", ctrl.Dashboard)

	// Users
	admin.Get("/users", ctrl.UserList)
	admin.Post("/users/update-status", validators.UpdateUserStatus(), ctrl.UpdateUserStatus)
	admin.Post("/users/delete", validators.DeleteUsers(), ctrl.DeleteUsers)
	admin.Get("/users/:id/logins", ctrl.LoginHistoryList)

	// Pricing
	pricingGroup := admin.Group("/pricing")
	pricingGroup.Get("/", ctrl.PricingList)
	pricingGroup.Post("/", validators.CreatePricing(), ctrl.CreatePricing)
	pricingGroup.Put("/:id/status", validators.PlanParam(), validators.PricingStatus(), ctrl.UpdatePricingStatus)
	pricingGroup.Put("/:id", validators.PlanParam(), validators.UpdatePricing(), ctrl.UpdatePricing)
	pricingGroup.Delete("/:id", validators.PlanParam(), ctrl.DeletePricing)
}
