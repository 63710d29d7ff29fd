package models

import (
	"time"

	"gorm.io/gorm"
)

type Exercise struct {
	gorm.Model
	UserID         uint      `gorm:"index;not null"`
	Activity       string    `gorm:"size:50"` // "walking" | "cycling" | …
	DurationMin    float64
	CaloriesBurned float64
	PerformedAt    time.Time `gorm:"index"`
	Notes          string    `gorm:"type:text"`
}
