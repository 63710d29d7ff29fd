package models

import "time"

// OTPChallenge is the single outstanding emailed code for an email address.
// Issuing a new code deletes any prior row for the same email, so at most
// one live challenge exists per email at any time.
type OTPChallenge struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"index;not null"`
	Code      string `gorm:"size:6;not null"` // text, keeps leading zeros
	ExpiresAt time.Time
	CreatedAt time.Time
}
