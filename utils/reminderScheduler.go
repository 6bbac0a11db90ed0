package utils

import (
	"fmt"
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	"lms/whatsapp"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// sessionSender is the slice of the whatsapp client the reminder job needs.
type sessionSender interface {
	SendSessionMessage(phone, text string) error
}

// InitializeReminderScheduler sets up the daily course-reminder job. This is
// the backend counterpart of the day-by-day delivery: learners with an
// active course who have not been nudged today get a session reminder.
func InitializeReminderScheduler() *cron.Cron {
	log.Println("[REMINDER-SCHEDULER] Initializing reminder scheduler...")

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Printf("[REMINDER-SCHEDULER] Failed to load IST location, using local time: %v", err)
		loc = time.Local
	}

	c := cron.New(cron.WithLocation(loc))
	c.AddFunc(config.AppConfig.ReminderCron, func() {
		log.Println("[REMINDER-SCHEDULER] Running daily reminder pass...")
		client := whatsapp.New(config.AppConfig.WhatsAppApiURL, config.AppConfig.WhatsAppApiKey, database.Database.Db)
		ProcessDueReminders(database.Database.Db, client)
	})

	c.Start()
	log.Printf("[REMINDER-SCHEDULER] Reminder scheduler started - cron %q IST", config.AppConfig.ReminderCron)
	return c
}

// ProcessDueReminders sends one reminder per active progress row that has
// not been reminded since the start of today. Each row is best-effort: a
// failed send is logged and skipped, the rest of the pass continues.
func ProcessDueReminders(db *gorm.DB, sender sessionSender) {
	dayStart := now.BeginningOfDay()

	var due []models.CourseProgress
	if err := db.
		Where("status IN ?", models.ActiveProgressStatuses).
		Where("last_reminder_at IS NULL OR last_reminder_at < ?", dayStart).
		Find(&due).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching due reminders: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d learners due a reminder", len(due))

	for _, row := range due {
		text := fmt.Sprintf(
			"Hi %s! Day %d of \"%s\" is waiting for you. Reply to continue learning.",
			row.LearnerName, row.CurrentDay, row.CourseName,
		)
		if err := sender.SendSessionMessage(row.PhoneNumber, text); err != nil {
			log.Printf("[REMINDER-SCHEDULER] Reminder to %s failed: %v", row.PhoneNumber, err)
			continue
		}

		nowTs := time.Now()
		if err := db.Model(&row).Updates(map[string]interface{}{
			"reminder_count":   row.ReminderCount + 1,
			"last_reminder_at": nowTs,
		}).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Failed to record reminder for %s: %v", row.PhoneNumber, err)
		}
	}
}
