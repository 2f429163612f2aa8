package models

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	UserID      *uint  `gorm:"index" json:"userId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
}
