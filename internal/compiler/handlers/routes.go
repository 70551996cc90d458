package handlers

import "github.com/gofiber/fiber/v3"

// Register mounts the compiler and health routes on app.
func Register(app *fiber.App, compile *CompileHandler, health *HealthHandler) {
	app.Get("/health/live", health.Liveness)
	app.Get("/health/ready", health.Readiness)
	app.Get("/health/startup", health.Startup)

	app.Post("/compile", compile.Compile)
	app.Post("/preview", compile.Preview)

	app.Get("/scenes", compile.ListScenes)
	app.Get("/scenes/:id", compile.GetScene)
	app.Get("/scenes/:id/preview", compile.GetScenePreview)
	app.Delete("/scenes/:id", compile.DeleteScene)
}
