package models

import (
	"time"

	"gorm.io/gorm"
)

type SugarReading struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	LevelMgDl  float64   `gorm:"not null"`
	Context    string    `gorm:"size:20"` // "fasting" | "post_meal" | "random"
	MeasuredAt time.Time `gorm:"index"`
	Notes      string    `gorm:"type:text"`
}
