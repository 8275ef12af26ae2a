package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

// toFiberError maps pipeline errors onto HTTP statuses.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, services.ErrExportEmpty):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNoCriteria):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}

// ErrorHandler renders every error as {"error", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
