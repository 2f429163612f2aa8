package utils

import (
	"log"
	"plato/database"
	"plato/models"
	assessmentService "plato/services/assessment"

	"github.com/robfig/cron/v3"
)

// InitializeAssessmentScheduler sets up the periodic expiry sweep for
// assessments that outlived their period.
func InitializeAssessmentScheduler(service *assessmentService.Service) {
	log.Println("[ASSESSMENT-SCHEDULER] Initializing assessment scheduler...")

	c := cron.New()

	// Run daily at 2 AM server time
	c.AddFunc("0 2 * * *", func() {
		log.Println("[ASSESSMENT-SCHEDULER] Running daily assessment expiry sweep...")
		RunAssessmentExpirySweep(service)
	})

	c.Start()
	log.Println("[ASSESSMENT-SCHEDULER] Assessment scheduler started - runs daily at 2 AM")
}

// RunAssessmentExpirySweep stops expired assessments and notifies their owners.
func RunAssessmentExpirySweep(service *assessmentService.Service) {
	stopped, err := service.EndAssessmentPeriod()
	if err != nil {
		log.Printf("[ASSESSMENT-SCHEDULER] Expiry sweep failed: %v", err)
		return
	}

	log.Printf("[ASSESSMENT-SCHEDULER] Stopped %d expired assessments", len(stopped))

	db := database.Database.Db
	for _, a := range stopped {
		var user models.User
		if err := db.First(&user, a.UserID).Error; err != nil {
			log.Printf("[ASSESSMENT-SCHEDULER] Error fetching user %d: %v", a.UserID, err)
			continue
		}

		notification := models.Notification{
			UserID:      &user.ID,
			Title:       "Assessment period ended",
			Description: "Your assessment period has ended. You can start a new assessment from the app.",
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("[ASSESSMENT-SCHEDULER] Error creating notification for user %d: %v", user.ID, err)
		}

		if a.StoppedDate != nil {
			SendAssessmentStoppedEmail(user.Email, user.Name, *a.StoppedDate)
		}
	}
}
