package models

import "gorm.io/gorm"

// Notification kinds and statuses
const (
	NotificationSession     = "SESSION"
	NotificationInteractive = "INTERACTIVE"

	NotificationSent   = "SENT"
	NotificationFailed = "FAILED"
)

// NotificationLog records every outbound WhatsApp send attempt, success or
// failure, with a snippet of the provider response for failures.
type NotificationLog struct {
	gorm.Model
	UUID             string `json:"uuid" gorm:"size:36;uniqueIndex"`
	PhoneNumber      string `json:"phone_number" gorm:"index;not null"`
	Kind             string `json:"kind"`   // SESSION, INTERACTIVE
	Status           string `json:"status"` // SENT, FAILED
	Body             string `json:"body"`
	ProviderResponse string `json:"provider_response" gorm:"size:512"`
}
