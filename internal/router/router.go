package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/school-records-api/internal/config"
	"github.com/noah-isme/school-records-api/internal/handler"
	"github.com/noah-isme/school-records-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler *handler.StudentHandler
	TeacherHandler *handler.TeacherHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(app.Group("/student"))
	}

	if deps.TeacherHandler != nil {
		deps.TeacherHandler.Register(app.Group("/teacher"))
	}
}
