package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/services"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrUnauthorized, fiber.StatusUnauthorized},
	{services.ErrEmailTaken, fiber.StatusBadRequest},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{services.ErrUnsupportedFormat, fiber.StatusBadRequest},
	{services.ErrFileTooLarge, fiber.StatusBadRequest},
	{services.ErrExtraction, fiber.StatusBadRequest},
	{services.ErrMissingResume, fiber.StatusBadRequest},
	{services.ErrNoActiveInterview, fiber.StatusNotFound},
	{services.ErrInterviewNotFound, fiber.StatusNotFound},
	{services.ErrUnknownQuestion, fiber.StatusBadRequest},
	{services.ErrQuestionAnswered, fiber.StatusConflict},
}

// StatusFor maps a service error to its HTTP status. Unknown errors are 500.
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders err as {error, code}. Details of 5xx errors are
// logged, never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}

func respondError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	message := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
		message = "Internal server error"
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error: message,
		Code:  status,
	})
}
