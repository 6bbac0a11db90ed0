package assignmentRoutes

import (
	controllers "lms/controllers/assignment"
	"lms/middleware"
	validators "lms/validators/assignment"

	"github.com/gofiber/fiber/v2"
)

// SetupAssignmentRoutes sets up the course-assignment workflow route
func SetupAssignmentRoutes(app *fiber.App) {
	assignmentGroup := app.Group("/assignment")

	assignmentGroup.Post("/assign", middleware.JWTMiddleware, validators.AssignCourse(), controllers.AssignCourse)
}
