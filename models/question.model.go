package models

import (
	"gorm.io/gorm"
)

// Question categories. The category decides how an answer is treated:
// phq/bdi answers are scored from their selected option, analytic answers
// feed the depression analysis, check-in answers are daily follow-ups.
const (
	CategoryPHQ      = "phq"
	CategoryBDI      = "bdi"
	CategoryAnalytic = "analytic"
	CategoryCheckin  = "check-in"
)

// Question types
const (
	QuestionTypeRadio = "radio"
	QuestionTypeText  = "text"
)

type Question struct {
	gorm.Model
	Name        string           `gorm:"not null" json:"name"`
	Content     string           `gorm:"not null" json:"content"`
	Description string           `json:"description"`
	Category    string           `gorm:"not null;index" json:"category"`
	Type        string           `gorm:"default:'radio'" json:"type"`
	Options     []QuestionOption `gorm:"foreignKey:QuestionID" json:"options"`
}

type QuestionOption struct {
	gorm.Model
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Label      string `gorm:"not null" json:"label"`
	Value      int    `gorm:"not null" json:"value"`
}
