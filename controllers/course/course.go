package controllers

import (
	"context"
	"errors"

	"aicareer/curriculum"
	"aicareer/grading"
	"aicareer/logger"
	"aicareer/middleware"
	"aicareer/progress"
	"aicareer/submission"
	courseValidator "aicareer/validators/course"

	"github.com/gofiber/fiber/v2"
)

// Chatter answers free-form prompts for /api/chat.
type Chatter interface {
	Chat(ctx context.Context, history []grading.Turn, prompt string) (string, error)
}

// CourseController serves the learner facing course API.
type CourseController struct {
	store       *curriculum.Store
	ledger      *progress.Ledger
	aggregator  *progress.Aggregator
	submissions *submission.Service
	chat        Chatter
	log         *logger.Logger
}

func NewCourseController(store *curriculum.Store, ledger *progress.Ledger, aggregator *progress.Aggregator, submissions *submission.Service, chat Chatter, log *logger.Logger) *CourseController {
	return &CourseController{
		store:       store,
		ledger:      ledger,
		aggregator:  aggregator,
		submissions: submissions,
		chat:        chat,
		log:         log.With("component", "course"),
	}
}

// GetAllStacks lists every stack with its decoded details.
func (cc *CourseController) GetAllStacks(c *fiber.Ctx) error {
	stacks, err := cc.store.ListStacks(c.UserContext())
	if err != nil {
		cc.log.Error("Error fetching stacks", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch learning stacks.")
	}
	return c.JSON(stacks)
}

func (cc *CourseController) GetStack(c *fiber.Ctx) error {
	stack, err := cc.store.GetStack(c.UserContext(), c.Params("id"))
	if errors.Is(err, curriculum.ErrStackNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Stack not found.")
	}
	if err != nil {
		cc.log.Error("Error fetching stack", "stack_id", c.Params("id"), "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch learning stack.")
	}
	return c.JSON(stack)
}

func (cc *CourseController) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	entries, err := cc.ledger.GetProgress(c.UserContext(), userID, c.Params("stackId"))
	if err != nil {
		cc.log.Error("Error fetching progress", "user_id", userID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch progress.")
	}
	return c.JSON(fiber.Map{"progress": entries})
}

func (cc *CourseController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	profile, err := cc.aggregator.BuildProfile(c.UserContext(), userID)
	if errors.Is(err, progress.ErrUserNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "User not found.")
	}
	if err != nil {
		cc.log.Error("Profile API Error", "user_id", userID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Could not load profile data.")
	}
	return c.JSON(profile)
}

func (cc *CourseController) Leaderboard(c *fiber.Ctx) error {
	board, err := cc.aggregator.Leaderboard(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		cc.log.Error("Leaderboard API Error", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Could not load leaderboard.")
	}
	return c.JSON(board)
}

// SubmitTask grades a submission. Grading and persistence failures still
// answer 200 with a rejected status.
func (cc *CourseController) SubmitTask(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSubmission").(*courseValidator.SubmitTaskRequest)

	result, err := cc.submissions.Submit(c.UserContext(), submission.Request{
		UserID:      reqData.UserID,
		StackID:     reqData.StackID,
		ModuleID:    reqData.ModuleID,
		Day:         reqData.Day,
		TaskIndex:   *reqData.TaskIndex,
		CodeContent: reqData.CodeContent,
	})
	if errors.Is(err, submission.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Could not find course data.")
	}
	if err != nil {
		cc.log.Error("Submission failed", "user_id", reqData.UserID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Could not process submission.")
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"status":           result.Status,
		"feedback":         result.Feedback,
		"points":           result.Points,
		"alreadyCompleted": result.AlreadyCompleted,
	})
}

func (cc *CourseController) Chat(c *fiber.Ctx) error {
	reqData := c.Locals("validatedChat").(*courseValidator.ChatRequest)

	text, err := cc.chat.Chat(c.UserContext(), reqData.History, reqData.Prompt)
	if err != nil {
		cc.log.Error("Chat API Error", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, grading.UnavailableMessage)
	}
	return c.JSON(fiber.Map{"text": text})
}
