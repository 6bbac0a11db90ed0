package repository

import (
	"fmt"
	"time"

	"lms/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRepository holds the read/write operations for course-progress
// rows. Each call is an independent request: nothing here opens a
// transaction, so a failure partway through a caller's sequence leaves state
// partially applied.
type ProgressRepository struct {
	db *gorm.DB
}

// NewProgressRepository builds a repository over the given connection.
func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// FindActiveByPhone returns progress rows with status ASSIGNED or STARTED
// for the canonical phone number.
func (r *ProgressRepository) FindActiveByPhone(phone string) ([]models.CourseProgress, error) {
	var rows []models.CourseProgress
	err := r.db.
		Where("phone_number = ? AND status IN ?", phone, models.ActiveProgressStatuses).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query active progress for %s: %w", phone, err)
	}
	return rows, nil
}

// SuspendActiveByPhone marks every active row for the phone as SUSPENDED and
// returns how many rows changed. More than one active row is a data anomaly;
// all of them are suspended regardless.
func (r *ProgressRepository) SuspendActiveByPhone(phone string) (int64, error) {
	result := r.db.Model(&models.CourseProgress{}).
		Where("phone_number = ? AND status IN ?", phone, models.ActiveProgressStatuses).
		Update("status", models.ProgressSuspended)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to suspend active progress for %s: %w", phone, result.Error)
	}
	return result.RowsAffected, nil
}

// InsertAssigned creates a fresh ASSIGNED progress row at day 1 with learner
// and course names snapshotted.
func (r *ProgressRepository) InsertAssigned(learner models.Learner, course models.Course, phone string) (*models.CourseProgress, error) {
	nowTs := time.Now()
	row := models.CourseProgress{
		UUID:                  uuid.NewString(),
		LearnerID:             learner.ID,
		LearnerName:           learner.Name,
		CourseID:              course.ID,
		CourseName:            course.Name,
		PhoneNumber:           phone,
		Status:                models.ProgressAssigned,
		CurrentDay:            1,
		LastModuleCompletedAt: &nowTs,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to insert progress for %s: %w", phone, err)
	}
	return &row, nil
}

// UpdateLearnerAssignedCourse points the learner's denormalized assigned
// course at the given course and refreshes the assignment timestamp.
func (r *ProgressRepository) UpdateLearnerAssignedCourse(learnerID, courseID uint) error {
	err := r.db.Model(&models.Learner{}).
		Where("id = ?", learnerID).
		Updates(map[string]interface{}{
			"assigned_course_id": courseID,
			"course_assigned_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update assigned course for learner %d: %w", learnerID, err)
	}
	return nil
}
