package services

import (
	"errors"
	"log"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/utils"
)

// OTPService owns issuance, single-active-code enforcement, expiry and
// consumption of login codes.
type OTPService struct {
	store    AuthStore
	notifier Notifier
	ttl      time.Duration

	now     func() time.Time
	newCode func() (string, error)
}

func NewOTPService(store AuthStore, notifier Notifier, ttl time.Duration) *OTPService {
	return &OTPService{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		now:      time.Now,
		newCode:  utils.GenerateOTPCode,
	}
}

// Issue replaces any outstanding challenge for the email with a fresh code
// and attempts delivery. A delivery failure is logged but does not roll back
// the stored challenge: the code stays redeemable.
func (s *OTPService) Issue(email string) error {
	code, err := s.newCode()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.ttl)
	if err := s.store.PutChallenge(email, code, expiresAt); err != nil {
		return err
	}

	if err := s.notifier.Send(email, code); err != nil {
		log.Printf("otp delivery to %s failed: %v", email, err)
	}
	return nil
}

// Verify consumes the challenge on success. A wrong code and an expired code
// look the same to the caller: both come back false with no error.
func (s *OTPService) Verify(email, code string) (bool, error) {
	ch, err := s.store.FindChallenge(email, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if !s.now().Before(ch.ExpiresAt) {
		return false, nil
	}

	if err := s.store.DeleteChallenge(email, code); err != nil {
		return false, err
	}
	return true, nil
}
