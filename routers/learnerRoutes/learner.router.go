package learnerRoutes

import (
	controllers "lms/controllers/learner"
	"lms/middleware"
	validators "lms/validators/learner"

	"github.com/gofiber/fiber/v2"
)

// SetupLearnerRoutes sets up learner management routes
func SetupLearnerRoutes(app *fiber.App) {
	learnerGroup := app.Group("/learner")

	learnerGroup.Post("/create", middleware.JWTMiddleware, validators.CreateLearner(), controllers.CreateLearner)
	learnerGroup.Get("/list", middleware.JWTMiddleware, validators.List(), controllers.GetAllLearners)
	learnerGroup.Get("/:id", middleware.JWTMiddleware, validators.LearnerID(), controllers.GetLearnerDetails)
	learnerGroup.Put("/:id", middleware.JWTMiddleware, validators.LearnerID(), validators.UpdateLearner(), controllers.UpdateLearner)
	learnerGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.LearnerID(), controllers.DeleteLearner)
}
