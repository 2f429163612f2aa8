package models

import (
	"time"

	"gorm.io/gorm"
)

// UserHealthData is a wearable/health-kit sample window synced by the app.
type UserHealthData struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"userId"`

	SleepStartDatetime time.Time `json:"sleepStartDatetime"`
	SleepEndDatetime   time.Time `json:"sleepEndDatetime"`
	SleepDuration      int64     `json:"sleepDuration"` // seconds

	Steps  int     `json:"steps"`
	Weight float64 `json:"weight"` // kilograms

	DataStartDatetime time.Time `json:"dataStartDatetime"`
	DataEndDatetime   time.Time `json:"dataEndDatetime"`
}
