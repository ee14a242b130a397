package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/matcher/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	match *handlers.MatchHandler,
	tasks *handlers.TaskHandler,
	jobs *handlers.JobsHandler,
	health *handlers.HealthHandler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	// Asynchronous resume matching
	v1.Post("/match-resume-async", match.Submit)
	v1.Get("/task-status/:task_id", tasks.Status)

	// Read-only job corpus view
	v1.Get("/jobs", jobs.List)
}
