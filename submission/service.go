// Package submission runs a task submission through grading and, on
// approval, records the completion and awards points.
package submission

import (
	"context"
	"errors"

	"aicareer/curriculum"
	"aicareer/grading"
	"aicareer/logger"
	"aicareer/progress"
)

// ErrNotFound is returned when the stack or the addressed task does not exist.
var ErrNotFound = errors.New("stack or task not found")

const SaveFailedMessage = "Something went wrong while saving your submission. Please retry."

type Request struct {
	UserID      uint
	StackID     string
	ModuleID    string
	Day         int
	TaskIndex   int
	CodeContent string
}

type Result struct {
	Status           string `json:"status"`
	Feedback         string `json:"feedback"`
	Points           int    `json:"points"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
}

type StackGetter interface {
	GetStack(ctx context.Context, id string) (curriculum.Stack, error)
}

type Recorder interface {
	CreditTask(ctx context.Context, k progress.Key, points int) (bool, error)
}

type Service struct {
	stacks   StackGetter
	ledger   Recorder
	reviewer grading.Reviewer
	log      *logger.Logger
}

func NewService(stacks StackGetter, ledger Recorder, reviewer grading.Reviewer, log *logger.Logger) *Service {
	return &Service{stacks: stacks, ledger: ledger, reviewer: reviewer, log: log.With("component", "submission")}
}

// Submit grades the code for one task. Points are awarded on every approval,
// including resubmissions of a task that is already recorded.
func (s *Service) Submit(ctx context.Context, req Request) (Result, error) {
	stack, err := s.stacks.GetStack(ctx, req.StackID)
	if errors.Is(err, curriculum.ErrStackNotFound) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		s.log.Error("Could not load course data", "stack_id", req.StackID, "error", err)
		return saveFailed(), nil
	}

	task, err := curriculum.FindTask(stack.Details, req.ModuleID, req.Day, req.TaskIndex)
	if err != nil {
		return Result{}, ErrNotFound
	}

	verdict := s.reviewer.Review(ctx, req.CodeContent, taskBrief(task.Title, task.Description))
	if !verdict.Approved() {
		return Result{Status: verdict.Status, Feedback: verdict.Feedback}, nil
	}

	points := curriculum.TaskPoints(task)
	inserted, err := s.ledger.CreditTask(ctx, progress.Key{
		UserID:    req.UserID,
		StackID:   req.StackID,
		ModuleID:  req.ModuleID,
		Day:       req.Day,
		TaskIndex: req.TaskIndex,
	}, points)
	if errors.Is(err, progress.ErrUserNotFound) {
		s.log.Warn("Approved submission for unknown user", "user_id", req.UserID, "stack_id", req.StackID)
		return saveFailed(), nil
	}
	if err != nil {
		s.log.Error("Failed to credit task", "user_id", req.UserID, "stack_id", req.StackID, "points", points, "error", err)
		return saveFailed(), nil
	}

	return Result{
		Status:           grading.StatusApproved,
		Feedback:         verdict.Feedback,
		Points:           points,
		AlreadyCompleted: !inserted,
	}, nil
}

func saveFailed() Result {
	return Result{Status: grading.StatusRejected, Feedback: SaveFailedMessage}
}

func taskBrief(title, description string) string {
	if title == "" {
		return description
	}
	if description == "" {
		return title
	}
	return title + "\n" + description
}
