package models

import (
	"time"

	"gorm.io/gorm"
)

// CourseProgress statuses. ASSIGNED and STARTED are the "active" statuses:
// at most one record per phone number should hold one of them at any time.
// The constraint is enforced by the assignment workflow, not by the schema,
// so concurrent assignments for the same phone can still race.
const (
	ProgressAssigned  = "ASSIGNED"
	ProgressStarted   = "STARTED"
	ProgressCompleted = "COMPLETED"
	ProgressSuspended = "SUSPENDED"
)

// ActiveProgressStatuses is the filter set for "does this phone already have
// a course in flight".
var ActiveProgressStatuses = []string{ProgressAssigned, ProgressStarted}

// CourseProgress records one learner's run through one course. The canonical
// phone number (+91XXXXXXXXXX) is the correlation key: it is the WhatsApp
// delivery address and the lookup key for active progress, so two learners
// sharing a phone collide here.
type CourseProgress struct {
	gorm.Model
	UUID        string `json:"uuid" gorm:"size:36;uniqueIndex"`
	LearnerID   uint   `json:"learner_id" gorm:"index;not null"`
	LearnerName string `json:"learner_name"` // snapshot at assignment time
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	CourseName  string `json:"course_name"` // snapshot at assignment time
	PhoneNumber string `json:"phone_number" gorm:"index;not null"`
	Status      string `json:"status" gorm:"default:'ASSIGNED'"`

	CurrentDay      int     `json:"current_day" gorm:"default:1"`
	ProgressPercent float64 `json:"progress_percent" gorm:"default:0"`

	StartedAt             *time.Time `json:"started_at"`
	LastModuleCompletedAt *time.Time `json:"last_module_completed_at"`
	CompletedAt           *time.Time `json:"completed_at"`

	ReminderCount  int        `json:"reminder_count" gorm:"default:0"`
	LastReminderAt *time.Time `json:"last_reminder_at"`
}
