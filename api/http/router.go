package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumecompare/api/http/handlers"
)

// Handlers groups the route handlers. Auth and Comparisons are nil when no
// database is configured; their routes are not registered then.
type Handlers struct {
	Upload      *handlers.UploadHandler
	Web         *handlers.WebHandler
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Comparisons *handlers.ComparisonsHandler
}

// Middleware holds the JWT guards. Optional lets anonymous requests through.
type Middleware struct {
	OptionalAuth fiber.Handler
	RequireAuth  fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, mw Middleware) {
	// HTML form
	app.Get("/", h.Web.Index)
	app.Get("/about", h.Web.About)
	app.Post("/upload", mw.OptionalAuth, h.Web.Upload)

	api := app.Group("/api")
	api.Post("/upload", mw.OptionalAuth, h.Upload.Upload)

	v1 := api.Group("/v1")
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	if h.Auth != nil {
		a := v1.Group("/auth")
		a.Post("/register", h.Auth.Register)
		a.Post("/login", h.Auth.Login)
	}

	if h.Comparisons != nil {
		cg := v1.Group("/comparisons", mw.RequireAuth)
		cg.Get("/", h.Comparisons.List)
		cg.Get("/:id", h.Comparisons.Get)
		cg.Delete("/:id", h.Comparisons.Delete)
	}
}
