package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null"`
	DoctorName  string    `gorm:"size:100"`
	Purpose     string    `gorm:"size:200"`
	Location    string    `gorm:"size:200"`
	ScheduledAt time.Time `gorm:"index"`
	Notes       string    `gorm:"type:text"`
	Cancelled   bool      `gorm:"default:false"`
}
