package utils

import (
	"fmt"
	"log"
	"plato/config"
	"time"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid. A missing API key
// disables sending instead of failing the caller.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] SendGrid disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Plato Health", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] failed to send %q to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected %q to %s: %d %s", subject, toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid error: status %d", resp.StatusCode)
	}
	return nil
}

// SendAssessmentStoppedEmail notifies a user that their assessment period ended.
func SendAssessmentStoppedEmail(toEmail, toName string, stoppedAt time.Time) error {
	body := getEmailTemplate("Assessment Period Ended", fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your current assessment period ended on %s.</p>
		<p>You can start a new assessment from the app whenever you are ready.
		Regular reassessment helps us keep your protocol recommendations up to date.</p>
	`, toName, stoppedAt.Format("January 2, 2006")))

	return SendEmail(toEmail, toName, "Your assessment period has ended", body)
}

// getEmailTemplate wraps body content in the standard layout.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #2D5D7B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #333333; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">Plato Health — this is an automated message, please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
