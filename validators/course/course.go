package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Visibility  string `json:"visibility"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Course name must be at least 3 characters long!"
		}
		if reqData.Visibility != "" && reqData.Visibility != models.CoursePublic && reqData.Visibility != models.CoursePrivate {
			errors["visibility"] = "Visibility must be PUBLIC or PRIVATE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Status      string `json:"status"`
			Visibility  string `json:"visibility"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status != "" &&
			reqData.Status != models.CourseDraft &&
			reqData.Status != models.CourseActive &&
			reqData.Status != models.CourseArchived {
			errors["status"] = "Status must be DRAFT, ACTIVE or ARCHIVED!"
		}
		if reqData.Visibility != "" && reqData.Visibility != models.CoursePublic && reqData.Visibility != models.CoursePrivate {
			errors["visibility"] = "Visibility must be PUBLIC or PRIVATE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

// CourseDays validates the day-content payload: positive unique day numbers,
// at least one module of text per day.
func CourseDays() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Days []struct {
				DayNumber int    `json:"day_number"`
				Module1   string `json:"module1"`
				Module2   string `json:"module2"`
				Module3   string `json:"module3"`
				MediaLink string `json:"media_link"`
			} `json:"days"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		seen := make(map[int]bool)

		for i, d := range reqData.Days {
			key := "days[" + strconv.Itoa(i) + "]"
			if d.DayNumber < 1 {
				errors[key] = "Day number must be greater than 0!"
				continue
			}
			if seen[d.DayNumber] {
				errors[key] = "Duplicate day number!"
				continue
			}
			seen[d.DayNumber] = true
			if strings.TrimSpace(d.Module1) == "" && strings.TrimSpace(d.Module2) == "" && strings.TrimSpace(d.Module3) == "" {
				errors[key] = "Each day needs at least one module of content!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseDays", reqData)
		return c.Next()
	}
}

// List validates pagination query params
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
