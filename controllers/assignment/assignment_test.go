package assignmentController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/assignment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T, providerURL string) (*fiber.App, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Learner{},
		&models.Course{},
		&models.CourseProgress{},
		&models.NotificationLog{},
	))
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		JWTKey:         "test-secret",
		SaltRound:      4,
		WhatsAppApiURL: providerURL,
		WhatsAppApiKey: "test-key",
	}

	operator := models.User{Name: "Operator", Email: "op@example.com", Role: "ADMIN", Password: "x"}
	require.NoError(t, db.Create(&operator).Error)

	token, err := middleware.GenerateJWT(operator.ID, operator.Name, operator.Role, operator.Email)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/assignment/assign", middleware.JWTMiddleware, validators.AssignCourse(), AssignCourse)
	return app, token
}

func postAssign(t *testing.T, app *fiber.App, token string, payload map[string]interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/assignment/assign", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestAssignEndpoint(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":true}`))
	}))
	defer provider.Close()

	app, token := setupTestApp(t, provider.URL)
	db := database.Database.Db

	learner := models.Learner{Name: "Asha", Phone: "9876543210", Status: models.LearnerActive}
	require.NoError(t, db.Create(&learner).Error)
	course := models.Course{Name: "Golang Basics", Status: models.CourseActive}
	require.NoError(t, db.Create(&course).Error)

	resp, body := postAssign(t, app, token, map[string]interface{}{
		"learner_ids": []uint{learner.ID},
		"course_id":   course.ID,
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["status"])

	var progress models.CourseProgress
	require.NoError(t, db.Where("phone_number = ?", "+919876543210").First(&progress).Error)
	assert.Equal(t, models.ProgressAssigned, progress.Status)

	// the send attempt was recorded
	var logCount int64
	db.Model(&models.NotificationLog{}).Where("status = ?", models.NotificationSent).Count(&logCount)
	assert.Equal(t, int64(1), logCount)
}

func TestAssignEndpointNeedsConfirmation(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":true}`))
	}))
	defer provider.Close()

	app, token := setupTestApp(t, provider.URL)
	db := database.Database.Db

	learner := models.Learner{Name: "Asha", Phone: "9876543210", Status: models.LearnerActive}
	require.NoError(t, db.Create(&learner).Error)
	oldCourse := models.Course{Name: "Old Course", Status: models.CourseActive}
	require.NoError(t, db.Create(&oldCourse).Error)
	newCourse := models.Course{Name: "New Course", Status: models.CourseActive}
	require.NoError(t, db.Create(&newCourse).Error)

	resp, _ := postAssign(t, app, token, map[string]interface{}{
		"learner_ids": []uint{learner.ID},
		"course_id":   oldCourse.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := postAssign(t, app, token, map[string]interface{}{
		"learner_ids": []uint{learner.ID},
		"course_id":   newCourse.ID,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["status"])

	// re-submit with confirmation
	resp, _ = postAssign(t, app, token, map[string]interface{}{
		"learner_ids":       []uint{learner.ID},
		"course_id":         newCourse.ID,
		"confirm_overwrite": true,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var suspended models.CourseProgress
	require.NoError(t, db.Where("course_name = ?", "Old Course").First(&suspended).Error)
	assert.Equal(t, models.ProgressSuspended, suspended.Status)
}

func TestAssignEndpointCourseMustBeActive(t *testing.T) {
	app, token := setupTestApp(t, "http://unused.local")
	db := database.Database.Db

	learner := models.Learner{Name: "Asha", Phone: "9876543210", Status: models.LearnerActive}
	require.NoError(t, db.Create(&learner).Error)
	draft := models.Course{Name: "Draft Course", Status: models.CourseDraft}
	require.NoError(t, db.Create(&draft).Error)

	resp, _ := postAssign(t, app, token, map[string]interface{}{
		"learner_ids": []uint{learner.ID},
		"course_id":   draft.ID,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAssignEndpointRequiresAuth(t *testing.T) {
	app, _ := setupTestApp(t, "http://unused.local")

	raw, _ := json.Marshal(map[string]interface{}{"learner_ids": []uint{1}, "course_id": 1})
	req := httptest.NewRequest("POST", "/assignment/assign", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
