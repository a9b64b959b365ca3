package controllers

import (
	"errors"

	"aicareer/curriculum"
	"aicareer/middleware"
	courseValidator "aicareer/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AdminGetAllStacks lists stacks for the admin console
func (cc *CourseController) AdminGetAllStacks(c *fiber.Ctx) error {
	stacks, err := cc.store.ListStacks(c.UserContext())
	if err != nil {
		cc.log.Error("Error fetching stacks", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to fetch stacks.")
	}
	return c.JSON(stacks)
}

// AdminCreateStack creates a new stack
func (cc *CourseController) AdminCreateStack(c *fiber.Ctx) error {
	reqData := c.Locals("validatedStack").(*courseValidator.CreateStackRequest)

	err := cc.store.CreateDocument(c.UserContext(), curriculum.Document{
		ID:          reqData.ID,
		Name:        reqData.Name,
		Description: reqData.Description,
		Details:     reqData.Details,
	})
	switch {
	case errors.Is(err, curriculum.ErrStackExists):
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.KindConflict, "A stack with this id already exists.")
	case errors.Is(err, curriculum.ErrMissingField):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.KindValidation, "Stack id and name are required.")
	case err != nil:
		cc.log.Error("Error creating stack", "stack_id", reqData.ID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to create stack.")
	}
	return middleware.MessageResponse(c, fiber.StatusCreated, "Stack created successfully.")
}

// AdminUpdateStack replaces name, description and details of a stack
func (cc *CourseController) AdminUpdateStack(c *fiber.Ctx) error {
	reqData := c.Locals("validatedStack").(*courseValidator.UpdateStackRequest)

	err := cc.store.UpdateDocument(c.UserContext(), c.Params("id"), curriculum.Document{
		Name:        reqData.Name,
		Description: reqData.Description,
		Details:     reqData.Details,
	})
	switch {
	case errors.Is(err, curriculum.ErrStackNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Stack not found.")
	case errors.Is(err, curriculum.ErrMissingField):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.KindValidation, "Stack name is required.")
	case err != nil:
		cc.log.Error("Error updating stack", "stack_id", c.Params("id"), "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to update stack.")
	}
	return middleware.MessageResponse(c, fiber.StatusOK, "Stack updated successfully.")
}

// AdminDeleteStack deletes a stack and the progress recorded against it
func (cc *CourseController) AdminDeleteStack(c *fiber.Ctx) error {
	err := cc.store.Delete(c.UserContext(), c.Params("id"))
	if errors.Is(err, curriculum.ErrStackNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Stack not found.")
	}
	if err != nil {
		cc.log.Error("Error deleting stack", "stack_id", c.Params("id"), "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to delete stack.")
	}
	return middleware.MessageResponse(c, fiber.StatusOK, "Stack deleted successfully.")
}

// AdminDuplicateStack copies a stack under a new id
func (cc *CourseController) AdminDuplicateStack(c *fiber.Ctx) error {
	cp, err := cc.store.Duplicate(c.UserContext(), c.Params("id"))
	if errors.Is(err, curriculum.ErrStackNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "Stack not found.")
	}
	if err != nil {
		cc.log.Error("Error duplicating stack", "stack_id", c.Params("id"), "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Failed to duplicate stack.")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Stack duplicated successfully.",
		"id":      cp.ID,
		"name":    cp.Name,
	})
}
