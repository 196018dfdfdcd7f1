package handlers

import (
	"github.com/contentdeck/contentdeck/internal/service"
	"github.com/gofiber/fiber/v2"
)

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// RespondError maps the service error taxonomy onto HTTP statuses. The wrap
// chain keeps the cause type, so handlers never parse message text.
func RespondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case service.IsValidation(err):
		status = fiber.StatusBadRequest
	case service.IsNotFound(err):
		status = fiber.StatusNotFound
	case service.IsConflict(err):
		status = fiber.StatusConflict
	case service.IsGeneration(err):
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func Respond(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}
