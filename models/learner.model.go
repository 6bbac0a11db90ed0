package models

import (
	"time"

	"gorm.io/gorm"
)

// Learner statuses
const (
	LearnerActive   = "ACTIVE"
	LearnerInactive = "INACTIVE"
)

// Learner is a person receiving courses over WhatsApp. Phone is stored as
// entered by the operator; it is normalized to +91XXXXXXXXXX wherever it is
// used as a lookup or delivery key.
type Learner struct {
	gorm.Model
	Name   string `json:"name" gorm:"not null"`
	Email  string `json:"email" gorm:"default:''"`
	Phone  string `json:"phone" gorm:"index"`
	Status string `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, INACTIVE

	// Denormalized pointer to the currently assigned course, maintained by
	// the assignment workflow.
	AssignedCourseID *uint      `json:"assigned_course_id" gorm:"index"`
	CourseAssignedAt *time.Time `json:"course_assigned_at"`

	IsDeleted bool `gorm:"default:false"`
}
