package assignmentController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/repository"
	"lms/utils"
	"lms/whatsapp"
	"lms/workflow"

	"github.com/gofiber/fiber/v2"
)

// AssignCourse runs the assignment workflow for the selected learners. When
// any learner already has an active course and confirm_overwrite is false,
// the response asks the operator to re-submit with confirmation.
func AssignCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		LearnerIDs       []uint `json:"learner_ids"`
		CourseID         uint   `json:"course_id"`
		ConfirmOverwrite bool   `json:"confirm_overwrite"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?", reqData.CourseID, false, models.CourseActive).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	var learners []models.Learner
	if err := db.Where("id IN ? AND is_deleted = ?", reqData.LearnerIDs, false).Find(&learners).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learners!", nil)
	}
	if len(learners) != len(reqData.LearnerIDs) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more learners not found!", nil)
	}

	// Preserve the operator's selection order: the batch halts on first
	// failure, so order decides who gets processed.
	byID := make(map[uint]models.Learner, len(learners))
	for _, l := range learners {
		byID[l.ID] = l
	}
	ordered := make([]models.Learner, 0, len(learners))
	for _, id := range reqData.LearnerIDs {
		ordered = append(ordered, byID[id])
	}

	notifier := whatsapp.New(config.AppConfig.WhatsAppApiURL, config.AppConfig.WhatsAppApiKey, db)
	service := workflow.NewService(repository.NewProgressRepository(db), notifier, utils.NormalizePhone)

	result := service.AssignCourse(ordered, course, reqData.ConfirmOverwrite)

	if result.NeedsConfirmation() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Learner already has an active course. Confirm overwrite to continue.", result)
	}

	if err := result.FirstError(); err != nil {
		for _, o := range result.Outcomes {
			if o.Status == workflow.OutcomeFailed {
				utils.SendBatchFailureEmail(user.Email, user.Name, course.Name, o.LearnerName, o.Error)
				break
			}
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Assignment failed: "+err.Error(), result)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course assigned successfully!", result)
}
