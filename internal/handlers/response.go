package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/repositories"
)

const (
	statusSuccess  = "success"
	statusError    = "error"
	statusFallback = "fallback"
)

// respondError writes err with the status code its AppError code maps to.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{
		"status": statusError,
		"error":  apperrors.Message(err),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return respondError(c, apperrors.NewInvalidInputError(message))
}

// lookupError turns a repository miss into a not-found AppError.
func lookupError(resource string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewNotFoundError(resource, err)
	}
	return err
}

func parseID(c *fiber.Ctx, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewInvalidInputError("Invalid " + resource + " ID format")
	}
	return id, nil
}

// ErrorHandler is the application-wide Fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"status": statusError,
			"error":  fiberErr.Message,
		})
	}
	return respondError(c, err)
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Mock Interview API is running",
	})
}
