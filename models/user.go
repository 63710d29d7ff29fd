package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email string `gorm:"uniqueIndex;not null"`

	FirstName              string
	LastName               string
	ContactNumber          string
	BirthDate              *time.Time
	Gender                 string
	HeightCm               float64
	WeightKg               float64
	BMI                    float64
	EmergencyContactName   string
	EmergencyContactNumber string
	DietaryPreference      string
	CalorieIntakeGoal      float64 // kcal/day to eat
	CalorieBurnGoal        float64 // kcal/day to burn
	ProfilePicture         string

	// Cached for list/display queries only. Every token-class decision
	// goes through IsProfileComplete().
	ProfileComplete bool
}

// IsProfileComplete is the single completeness predicate. A profile is
// complete when every required field is populated; the optional fields
// (dietary preference, calorie goals, picture) don't count.
func (u *User) IsProfileComplete() bool {
	return u.FirstName != "" &&
		u.LastName != "" &&
		u.ContactNumber != "" &&
		u.BirthDate != nil && !u.BirthDate.IsZero() &&
		u.Gender != "" &&
		u.HeightCm > 0 &&
		u.WeightKg > 0 &&
		u.EmergencyContactName != "" &&
		u.EmergencyContactNumber != ""
}

// HasProfileData reports whether a profile was ever created for this user.
// Users minted by the first OTP request carry only an email.
func (u *User) HasProfileData() bool {
	return u.FirstName != "" || u.LastName != "" || u.ContactNumber != ""
}
