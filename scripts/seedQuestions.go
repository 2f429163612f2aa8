package main

import (
	"fmt"
	"log"
	"plato/config"
	"plato/database"
	"plato/models"
)

// Seeds the questionnaire reference data: PHQ-9 and BDI-II scale questions
// with their scored options, the analytic free-text question, the daily
// check-in questions and the protocol catalogue. Safe to re-run; it skips
// seeding when questions already exist.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count > 0 {
		log.Printf("Questions already seeded (%d present), nothing to do.", count)
		return
	}

	frequencyOptions := func() []models.QuestionOption {
		return []models.QuestionOption{
			{Label: "Not at all", Value: 0},
			{Label: "Several days", Value: 1},
			{Label: "More than half the days", Value: 2},
			{Label: "Nearly every day", Value: 3},
		}
	}

	phqContents := []string{
		"Little interest or pleasure in doing things",
		"Feeling down, depressed, or hopeless",
		"Trouble falling or staying asleep, or sleeping too much",
		"Feeling tired or having little energy",
		"Poor appetite or overeating",
		"Feeling bad about yourself, or that you are a failure",
		"Trouble concentrating on things",
		"Moving or speaking slowly, or being fidgety or restless",
		"Thoughts that you would be better off dead or of hurting yourself",
	}

	questions := make([]models.Question, 0)
	for i, content := range phqContents {
		questions = append(questions, models.Question{
			Name:     fmt.Sprintf("phq_%d", i+1),
			Content:  content,
			Category: models.CategoryPHQ,
			Type:     models.QuestionTypeRadio,
			Options:  frequencyOptions(),
		})
	}

	bdiItems := []struct {
		name    string
		content string
	}{
		{"bdi_sadness", "Sadness"},
		{"bdi_pessimism", "Pessimism"},
		{"bdi_past_failure", "Past failure"},
		{"bdi_loss_of_pleasure", "Loss of pleasure"},
		{"bdi_self_dislike", "Self-dislike"},
		{"bdi_irritability", "Irritability"},
		{"bdi_fatigue", "Tiredness or fatigue"},
	}
	for _, item := range bdiItems {
		questions = append(questions, models.Question{
			Name:     item.name,
			Content:  item.content,
			Category: models.CategoryBDI,
			Type:     models.QuestionTypeRadio,
			Options: []models.QuestionOption{
				{Label: "Not at all", Value: 0},
				{Label: "Mildly", Value: 1},
				{Label: "Moderately", Value: 2},
				{Label: "Severely", Value: 3},
			},
		})
	}

	questions = append(questions, models.Question{
		Name:        "analytic_feelings",
		Content:     "In your own words, how have you been feeling lately?",
		Description: "Free text used for depression analysis",
		Category:    models.CategoryAnalytic,
		Type:        models.QuestionTypeText,
	})

	questions = append(questions,
		models.Question{
			Name:        "daily_mood",
			Content:     "How are you feeling today?",
			Description: "Daily mood check-in",
			Category:    models.CategoryCheckin,
			Type:        models.QuestionTypeRadio,
			Options: []models.QuestionOption{
				{Label: "Very Good", Value: 5},
				{Label: "Good", Value: 4},
				{Label: "Neutral", Value: 3},
				{Label: "Bad", Value: 2},
				{Label: "Very Bad", Value: 1},
			},
		},
		models.Question{
			Name:        "additional_notes",
			Content:     "Any additional thoughts or notes for today?",
			Description: "Free text for additional thoughts",
			Category:    models.CategoryCheckin,
			Type:        models.QuestionTypeText,
		},
	)

	if err := db.Create(&questions).Error; err != nil {
		log.Fatalf("Failed to seed questions: %v", err)
	}
	log.Printf("Seeded %d questions.", len(questions))

	protocols := []models.Protocol{
		{Name: "Behavioral Activation", Description: "Structured activity scheduling and engagement"},
		{Name: "Cognitive Restructuring", Description: "Identifying and reframing negative thought patterns"},
		{Name: "Mindfulness Training", Description: "Guided mindfulness and breathing exercises"},
		{Name: "Sleep Hygiene", Description: "Sleep routine and environment improvements"},
		{Name: "Social Reconnection", Description: "Gradual re-engagement with social activities"},
	}
	if err := db.Create(&protocols).Error; err != nil {
		log.Fatalf("Failed to seed protocols: %v", err)
	}
	log.Printf("Seeded %d protocols.", len(protocols))
}
