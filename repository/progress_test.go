package repository

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Learner{},
		&models.Course{},
		&models.CourseProgress{},
	))
	return db
}

func seedProgress(t *testing.T, db *gorm.DB, phone, status string, courseName string) models.CourseProgress {
	t.Helper()
	row := models.CourseProgress{
		UUID:        courseName + "-" + phone + "-" + status,
		LearnerID:   1,
		LearnerName: "Asha",
		CourseID:    1,
		CourseName:  courseName,
		PhoneNumber: phone,
		Status:      status,
		CurrentDay:  1,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func TestFindActiveByPhone(t *testing.T) {
	db := newTestDb(t)
	repo := NewProgressRepository(db)

	seedProgress(t, db, "+919876543210", models.ProgressAssigned, "Golang Basics")
	seedProgress(t, db, "+919876543210", models.ProgressSuspended, "Old Course")
	seedProgress(t, db, "+919876543210", models.ProgressCompleted, "Done Course")
	seedProgress(t, db, "+919999999999", models.ProgressStarted, "Other Phone")

	rows, err := repo.FindActiveByPhone("+919876543210")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Golang Basics", rows[0].CourseName)
}

func TestSuspendActiveByPhone(t *testing.T) {
	db := newTestDb(t)
	repo := NewProgressRepository(db)

	// two active rows is the anomaly case: both must be suspended
	seedProgress(t, db, "+919876543210", models.ProgressAssigned, "Course A")
	seedProgress(t, db, "+919876543210", models.ProgressStarted, "Course B")
	seedProgress(t, db, "+919876543210", models.ProgressCompleted, "Course C")

	count, err := repo.SuspendActiveByPhone("+919876543210")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	rows, err := repo.FindActiveByPhone("+919876543210")
	require.NoError(t, err)
	assert.Empty(t, rows)

	var completed models.CourseProgress
	require.NoError(t, db.Where("course_name = ?", "Course C").First(&completed).Error)
	assert.Equal(t, models.ProgressCompleted, completed.Status)
}

func TestInsertAssigned(t *testing.T) {
	db := newTestDb(t)
	repo := NewProgressRepository(db)

	learner := models.Learner{Name: "Asha", Phone: "9876543210"}
	require.NoError(t, db.Create(&learner).Error)
	course := models.Course{Name: "Golang Basics", Status: models.CourseActive}
	require.NoError(t, db.Create(&course).Error)

	row, err := repo.InsertAssigned(learner, course, "+919876543210")
	require.NoError(t, err)

	assert.Equal(t, models.ProgressAssigned, row.Status)
	assert.Equal(t, 1, row.CurrentDay)
	assert.Equal(t, "Asha", row.LearnerName)
	assert.Equal(t, "Golang Basics", row.CourseName)
	assert.NotEmpty(t, row.UUID)
	assert.NotNil(t, row.LastModuleCompletedAt)
}

func TestUpdateLearnerAssignedCourse(t *testing.T) {
	db := newTestDb(t)
	repo := NewProgressRepository(db)

	learner := models.Learner{Name: "Asha"}
	require.NoError(t, db.Create(&learner).Error)

	require.NoError(t, repo.UpdateLearnerAssignedCourse(learner.ID, 42))

	var reloaded models.Learner
	require.NoError(t, db.First(&reloaded, learner.ID).Error)
	require.NotNil(t, reloaded.AssignedCourseID)
	assert.Equal(t, uint(42), *reloaded.AssignedCourseID)
	assert.NotNil(t, reloaded.CourseAssignedAt)
}
