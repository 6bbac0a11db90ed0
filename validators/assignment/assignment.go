package assignmentValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// AssignCourse validates the bulk-assignment payload
func AssignCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LearnerIDs       []uint `json:"learner_ids"`
			CourseID         uint   `json:"course_id"`
			ConfirmOverwrite bool   `json:"confirm_overwrite"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.LearnerIDs) == 0 {
			errors["learner_ids"] = "At least one learner is required!"
		}
		seen := make(map[uint]bool)
		for _, id := range reqData.LearnerIDs {
			if id == 0 {
				errors["learner_ids"] = "Learner IDs must be greater than 0!"
				break
			}
			if seen[id] {
				errors["learner_ids"] = "Duplicate learner IDs are not allowed!"
				break
			}
			seen[id] = true
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}
