package courseValidator

import (
	"aicareer/grading"
	"aicareer/middleware"
	"aicareer/validators"

	"github.com/gofiber/fiber/v2"
)

type SubmitTaskRequest struct {
	UserID      uint   `json:"userId" validate:"required"`
	StackID     string `json:"stackId" validate:"required"`
	ModuleID    string `json:"moduleId" validate:"required"`
	Day         int    `json:"day" validate:"required"`
	TaskIndex   *int   `json:"taskIndex" validate:"required,gte=0"`
	CodeContent string `json:"codeContent" validate:"required"`
}

type ChatRequest struct {
	History []grading.Turn `json:"history" validate:"dive"`
	Prompt  string         `json:"prompt" validate:"required"`
}

// SubmitTask validates the task submission body
func SubmitTask() fiber.Handler {
	return validators.Body[SubmitTaskRequest]("validatedSubmission", "Missing required fields.")
}

// Chat validates the chat body
func Chat() fiber.Handler {
	return validators.Body[ChatRequest]("validatedChat", "Prompt is required.")
}

// UserParam checks that :userId is a positive integer and stores it as uint.
func UserParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("userId")
		if err != nil || userID < 1 {
			return middleware.ValidationErrorResponse(c, "Invalid user id.", map[string]string{"userId": "userId must be a positive integer"})
		}
		c.Locals("userId", uint(userID))
		return c.Next()
	}
}
