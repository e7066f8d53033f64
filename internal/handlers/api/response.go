package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess wraps data in the envelope every API handler emits: a
// "status" discriminator plus the payload under "data".
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError emits the error side of the envelope with the given HTTP
// status. The message is client-facing; internal detail stays in logs.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
