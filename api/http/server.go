package http

import (
	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/api/http/middleware"
	"github.com/artem13815/resumecompare/pkg/logger"
)

// multipartSlack covers multipart boundaries and headers on top of the file itself.
const multipartSlack = 64 << 10

type AppConfig struct {
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// NewApp builds the Fiber app with the error handler, middleware and routes.
func NewApp(cfg AppConfig, h Handlers, mw Middleware) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "resumecompare",
		BodyLimit:             int(cfg.MaxUploadBytes) + multipartSlack,
		ErrorHandler:          ErrorHandler(h.Web, cfg.MaxUploadBytes),
		DisableStartupMessage: true,
	})
	app.Use(fiberrecover.New())
	app.Use(middleware.RequestLogger(logger.OrNop(cfg.Logger)))

	Register(app, h, mw)
	return app
}
