package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a single HTML email through Sendgrid.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		return fmt.Errorf("sendgrid api key is not configured")
	}

	from := mail.NewEmail("Learner Console", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #075E54; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #222222; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>LEARNER CONSOLE</h1></div>
			<div class="content"><h2>%s</h2>%s</div>
			<div class="footer">&copy; 2026 Learner Console. All rights reserved.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail is fired when a new operator account is created.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Learner Console"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your operator account has been created.</p>
		<p>You can now manage learners, courses and WhatsApp course assignments from the console.</p>
	`, name)

	go SendEmail(email, name, subject, emailTemplate("Welcome Onboard!", body))
}

// SendBatchFailureEmail alerts an operator that a bulk assignment stopped
// partway through.
func SendBatchFailureEmail(email, name, courseName, failedLearner, reason string) {
	subject := "Assignment batch stopped: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The bulk assignment of <strong>%s</strong> stopped at learner <strong>%s</strong>:</p>
		<p><em>%s</em></p>
		<p>Learners before the failure were assigned; the rest were skipped and must be re-submitted.</p>
	`, name, courseName, failedLearner, reason)

	go SendEmail(email, name, subject, emailTemplate("Batch Assignment Stopped", body))
}
