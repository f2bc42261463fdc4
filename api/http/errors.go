package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumecompare/api/http/handlers"
	"github.com/artem13815/resumecompare/api/http/presenter"
)

// ErrorHandler renders errors that escape handlers, most notably the 413 fiber
// raises itself when a request body exceeds BodyLimit. JSON routes get a JSON
// body, the form gets the upload page with a message.
func ErrorHandler(web *handlers.WebHandler, maxUploadBytes int64) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := http.StatusInternalServerError
		msg := "internal error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code == http.StatusRequestEntityTooLarge {
			msg = handlers.TooLargeMessage(maxUploadBytes)
		}

		path := c.Path()
		switch {
		case path == "/api/upload":
			return presenter.UploadError(c, code, msg)
		case strings.HasPrefix(path, "/api/"):
			return presenter.Error(c, code, msg)
		case web != nil && path == "/upload":
			return web.RenderError(c, code, msg)
		default:
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(code).SendString(msg)
		}
	}
}
