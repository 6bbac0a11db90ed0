package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an operator account for the admin console
type User struct {
	gorm.Model
	Name      string     `gorm:"default:''"`
	Email     string     `gorm:"unique;not null"`
	Mobile    string     `gorm:"default:''"`
	Role      string     `gorm:"default:'ADMIN'"` // ADMIN, SUPER-ADMIN
	Password  string     `gorm:"not null"`
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`
}
