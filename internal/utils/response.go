package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the envelope of every JSON API reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse replies with status and message. Internal error details are only
// exposed for client errors.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		if status < fiber.StatusInternalServerError {
			resp.Error = err.Error()
		}
		GetLogger().WithError(err).WithField("path", c.Path()).Debug(message)
	}
	return c.Status(status).JSON(resp)
}
