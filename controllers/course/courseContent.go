package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// UpsertCourseDays replaces the day content of a course. Each day carries up
// to three module text blocks and an optional media link.
func UpsertCourseDays(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseDays").(*struct {
		Days []struct {
			DayNumber int    `json:"day_number"`
			Module1   string `json:"module1"`
			Module2   string `json:"module2"`
			Module3   string `json:"module3"`
			MediaLink string `json:"media_link"`
		} `json:"days"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	// Soft-retire existing content before inserting the new set
	if err := tx.Model(&models.CourseDay{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course content!", nil)
	}

	days := make([]models.CourseDay, 0, len(reqData.Days))
	for _, d := range reqData.Days {
		days = append(days, models.CourseDay{
			CourseID:  course.ID,
			DayNumber: d.DayNumber,
			Module1:   d.Module1,
			Module2:   d.Module2,
			Module3:   d.Module3,
			MediaLink: d.MediaLink,
		})
	}
	if len(days) > 0 {
		if err := tx.Create(&days).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course content!", nil)
		}
	}

	if err := tx.Model(&course).Update("total_days", len(days)).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content saved successfully!", fiber.Map{
		"course_id":  course.ID,
		"total_days": len(days),
	})
}
