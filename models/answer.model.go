package models

import (
	"time"

	"gorm.io/gorm"
)

// AssessmentAnswer is owned by exactly one assessment. Initial questionnaire
// answers carry is_checkin=false; daily check-in answers carry is_checkin=true
// plus the shared checkin_date and submission id of their batch.
type AssessmentAnswer struct {
	gorm.Model
	AssessmentID     uint            `gorm:"not null;index" json:"assessmentId"`
	QuestionID       uint            `gorm:"not null" json:"questionId"`
	Question         *Question       `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Answer           *string         `json:"answer"`
	SelectedOptionID *uint           `json:"selectedOptionId"`
	SelectedOption   *QuestionOption `gorm:"foreignKey:SelectedOptionID" json:"selected_option,omitempty"`
	Index            int             `gorm:"column:idx;default:0" json:"index"`
	IsCheckin        bool            `gorm:"default:false;index" json:"is_checkin"`
	CheckinDate      *time.Time      `gorm:"index" json:"checkin_date"`
	SubmissionID     string          `gorm:"default:''" json:"submissionId"`
}
