package progressController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/repository"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// ListProgress lists course-progress rows with optional filters
func ListProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.CourseProgress{})
	if phone := c.Query("phone"); phone != "" {
		normalized, err := utils.NormalizePhone(phone)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid phone number!", nil)
		}
		db = db.Where("phone_number = ?", normalized)
	}
	if learnerID := c.QueryInt("learner_id"); learnerID > 0 {
		db = db.Where("learner_id = ?", learnerID)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var rows []models.CourseProgress
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	response := map[string]interface{}{
		"progress": rows,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", response)
}

// GetActiveByPhone returns the active progress rows for a phone number
func GetActiveByPhone(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	phone, err := utils.NormalizePhone(c.Params("phone"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid phone number!", nil)
	}

	repo := repository.NewProgressRepository(database.Database.Db)
	rows, err := repo.FindActiveByPhone(phone)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch active progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Active progress fetched successfully!", fiber.Map{
		"phone":    phone,
		"progress": rows,
	})
}
