package progressRoutes

import (
	notificationControllers "lms/controllers/notification"
	controllers "lms/controllers/progress"
	"lms/middleware"
	validators "lms/validators/learner"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up progress and notification-log routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress")

	progressGroup.Get("/list", middleware.JWTMiddleware, validators.List(), controllers.ListProgress)
	progressGroup.Get("/active/:phone", middleware.JWTMiddleware, controllers.GetActiveByPhone)

	notificationGroup := app.Group("/notification")
	notificationGroup.Get("/logs", middleware.JWTMiddleware, notificationControllers.ListNotificationLogs)
}
