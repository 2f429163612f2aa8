package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name      string     `gorm:"default:''" json:"name"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Role      string     `gorm:"default:'USER'" json:"role"`
	Password  string     `gorm:"not null" json:"-"`
	LastLogin *time.Time `json:"lastLogin"`
	IsDeleted bool       `gorm:"default:false" json:"-"`
}
