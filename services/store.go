package services

import (
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"
)

// AuthStore is the identity persistence contract for the auth flows. Every
// call is atomic at single-call granularity. PutChallenge must delete any
// prior challenge for the email and insert the new one in a single
// transaction — that transaction is all that enforces the one-live-code
// invariant under concurrent requests; the services take no locks.
type AuthStore interface {
	FindUserByEmail(email string) (*models.User, error)
	CreateUser(email string) (*models.User, error)
	GetProfile(userID uint) (*models.User, error)
	UpsertProfile(user *models.User) error

	PutChallenge(email, code string, expiresAt time.Time) error
	FindChallenge(email, code string) (*models.OTPChallenge, error)
	DeleteChallenge(email, code string) error
}

// Notifier delivers a one-time code out of band (email today).
type Notifier interface {
	Send(email, code string) error
}

// ImageUploader stores a base64 image and returns its public URL.
type ImageUploader interface {
	UploadBase64Image(base64Data, filenamePrefix string) (string, error)
}
