package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/service"
)

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// respondError maps a service error onto the API error body. Unclassified
// errors are logged and answered with fallback.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	}

	msg := fallback
	var svcErr *service.Error
	if status != fiber.StatusInternalServerError && errors.As(err, &svcErr) {
		msg = svcErr.Error()
	} else {
		log.Printf("[api] %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// ErrorHandler answers errors that escape a handler with the same body the
// handlers use. fiber errors keep their status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Printf("[api] unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": msg,
	})
}
