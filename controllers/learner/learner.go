package learnerController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateLearner adds a new learner
func CreateLearner(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedLearner").(*struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	learner := models.Learner{
		Name:   reqData.Name,
		Email:  reqData.Email,
		Phone:  reqData.Phone,
		Status: models.LearnerActive,
	}

	if err := database.Database.Db.Create(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create learner!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Learner created successfully!", learner)
}

// GetAllLearners lists learners with pagination
func GetAllLearners(c *fiber.Ctx) error {
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

	db := database.Database.Db.Model(&models.Learner{}).Where("is_deleted = ?", false)
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var learners []models.Learner
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&learners).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learners!", nil)
	}

	response := map[string]interface{}{
		"learners": learners,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learners fetched successfully!", response)
}

// GetLearnerDetails returns one learner with their progress history
func GetLearnerDetails(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	learnerID := c.Locals("learnerID").(int)

	var learner models.Learner
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", learnerID, false).First(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learner not found!", nil)
	}

	// Progress history keyed by the canonical phone number
	var progress []models.CourseProgress
	if phone, err := utils.NormalizePhone(learner.Phone); err == nil {
		database.Database.Db.
			Where("phone_number = ?", phone).
			Order("created_at desc").
			Find(&progress)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learner fetched successfully!", fiber.Map{
		"learner":  learner,
		"progress": progress,
	})
}

// UpdateLearner updates learner fields
func UpdateLearner(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	learnerID := c.Locals("learnerID").(int)

	var learner models.Learner
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", learnerID, false).First(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learner not found!", nil)
	}

	reqData, ok := c.Locals("validatedLearnerUpdate").(*struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Name != "" {
		learner.Name = reqData.Name
	}
	if reqData.Email != "" {
		learner.Email = reqData.Email
	}
	if reqData.Phone != "" {
		learner.Phone = reqData.Phone
	}
	if reqData.Status != "" {
		learner.Status = reqData.Status
	}

	if err := database.Database.Db.Save(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update learner!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learner updated successfully!", learner)
}

// DeleteLearner soft deletes a learner
func DeleteLearner(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	learnerID := c.Locals("learnerID").(int)

	var learner models.Learner
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", learnerID, false).First(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learner not found!", nil)
	}

	learner.IsDeleted = true
	if err := database.Database.Db.Save(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete learner!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learner deleted successfully!", nil)
}
