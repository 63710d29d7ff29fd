package models

import (
	"time"

	"gorm.io/gorm"
)

// One logged Meal (breakfast/lunch/…) with caller-supplied macros.
type Meal struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	Type     string    `gorm:"size:20"` // "breakfast" | "lunch" | "dinner" | "snack"
	AteAt    time.Time `gorm:"index"`
	Name     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Notes    string `gorm:"type:text"`
}
