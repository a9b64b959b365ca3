package courseRoutes

import (
	controllers "aicareer/controllers/course"
	validators "aicareer/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up stack management on an admin group
func SetupAdminCourseRoutes(admin fiber.Router, cc *controllers.CourseController) {
	stackGroup := admin.Group("/stacks")

	stackGroup.Get("/", cc.AdminGetAllStacks)
	stackGroup.Post("/", validators.CreateStack(), cc.AdminCreateStack)
	stackGroup.Put("/:id", validators.UpdateStack(), cc.AdminUpdateStack)
	stackGroup.Delete("/:id", cc.AdminDeleteStack)
	stackGroup.Post("/:id/duplicate", cc.AdminDuplicateStack)
}
