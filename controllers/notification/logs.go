package notificationController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotificationLogs lists recent outbound WhatsApp send attempts
func ListNotificationLogs(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	db := database.Database.Db.Model(&models.NotificationLog{})
	if phone := c.Query("phone"); phone != "" {
		db = db.Where("phone_number = ?", phone)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var logs []models.NotificationLog
	if err := db.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notification logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification logs fetched successfully!", fiber.Map{
		"logs": logs,
	})
}
