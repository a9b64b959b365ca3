package courseRoutes

import (
	controllers "aicareer/controllers/course"
	validators "aicareer/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner facing course routes
func SetupCourseRoutes(api fiber.Router, cc *controllers.CourseController) {
	// Stacks
	api.Get("/stacks", cc.GetAllStacks)
	api.Get("/stacks/:id", cc.GetStack)

	// Progress and profile
	api.Get("/progress/:userId/:stackId", validators.UserParam(), cc.GetProgress)
	api.Get("/profile/:userId", validators.UserParam(), cc.GetProfile)
	api.Get("/leaderboard", cc.Leaderboard)

	// Submission and chat
	api.Post("/submit-task", validators.SubmitTask(), cc.SubmitTask)
	api.Post("/chat", validators.Chat(), cc.Chat)
}
