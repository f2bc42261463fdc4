package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
}

// UploadErrorResponse is the error body of the upload endpoint.
type UploadErrorResponse struct {
	Error string `json:"error"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// UploadError writes {"error": message}.
func UploadError(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, UploadErrorResponse{Error: message})
}
