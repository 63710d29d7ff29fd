package repository

import (
	"errors"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"
	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"gorm.io/gorm"
)

// AuthRepository is the gorm adapter behind services.AuthStore.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) CreateUser(email string) (*models.User, error) {
	user := models.User{Email: email}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) UpsertProfile(user *models.User) error {
	return r.db.Save(user).Error
}

// PutChallenge supersedes any outstanding challenge for the email. Delete
// and insert run in one transaction so two concurrent issuances cannot leave
// two live codes behind.
func (r *AuthRepository) PutChallenge(email, code string, expiresAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.OTPChallenge{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.OTPChallenge{
			Email:     email,
			Code:      code,
			ExpiresAt: expiresAt,
		}).Error
	})
}

// FindChallenge matches the code exactly; the newest row wins in the
// defensive case where more than one exists.
func (r *AuthRepository) FindChallenge(email, code string) (*models.OTPChallenge, error) {
	var ch models.OTPChallenge
	err := r.db.Where("email = ? AND code = ?", email, code).
		Order("created_at DESC").
		First(&ch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func (r *AuthRepository) DeleteChallenge(email, code string) error {
	return r.db.Where("email = ? AND code = ?", email, code).
		Delete(&models.OTPChallenge{}).Error
}
