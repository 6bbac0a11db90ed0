package models

import "gorm.io/gorm"

// Course statuses and visibility
const (
	CourseActive   = "ACTIVE"
	CourseDraft    = "DRAFT"
	CourseArchived = "ARCHIVED"

	CoursePublic  = "PUBLIC"
	CoursePrivate = "PRIVATE"
)

// Course represents a WhatsApp-delivered course
type Course struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"default:'DRAFT'"`      // DRAFT, ACTIVE, ARCHIVED
	Visibility  string `json:"visibility" gorm:"default:'PUBLIC'"` // PUBLIC, PRIVATE
	TotalDays   int    `json:"total_days" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`

	Days []CourseDay `json:"days,omitempty" gorm:"foreignKey:CourseID"`
}

// CourseDay is one day of course content: up to three module text blocks and
// an optional media link, delivered one day at a time.
type CourseDay struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	DayNumber int    `json:"day_number" gorm:"index;not null"`
	Module1   string `json:"module1"`
	Module2   string `json:"module2"`
	Module3   string `json:"module3"`
	MediaLink string `json:"media_link"`
	IsDeleted bool   `gorm:"default:false"`
}
