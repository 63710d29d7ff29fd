package services

import (
	"errors"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"
)

// fakeStore is an in-memory AuthStore. One challenge slot per email mirrors
// the store-level single-active-code behavior.
type fakeStore struct {
	users      map[string]*models.User
	challenges map[string]*models.OTPChallenge
	nextID     uint
	failAll    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]*models.User),
		challenges: make(map[string]*models.OTPChallenge),
	}
}

var errStorage = errors.New("storage exploded")

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	if f.failAll {
		return nil, errStorage
	}
	u, ok := f.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) CreateUser(email string) (*models.User, error) {
	if f.failAll {
		return nil, errStorage
	}
	f.nextID++
	u := &models.User{Email: email}
	u.ID = f.nextID
	f.users[email] = u
	return u, nil
}

func (f *fakeStore) GetProfile(userID uint) (*models.User, error) {
	if f.failAll {
		return nil, errStorage
	}
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) UpsertProfile(user *models.User) error {
	if f.failAll {
		return errStorage
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeStore) PutChallenge(email, code string, expiresAt time.Time) error {
	if f.failAll {
		return errStorage
	}
	f.challenges[email] = &models.OTPChallenge{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeStore) FindChallenge(email, code string) (*models.OTPChallenge, error) {
	if f.failAll {
		return nil, errStorage
	}
	ch, ok := f.challenges[email]
	if !ok || ch.Code != code {
		return nil, ErrNotFound
	}
	return ch, nil
}

func (f *fakeStore) DeleteChallenge(email, code string) error {
	if f.failAll {
		return errStorage
	}
	if ch, ok := f.challenges[email]; ok && ch.Code == code {
		delete(f.challenges, email)
	}
	return nil
}

// fakeNotifier records every delivered code and can simulate outages.
type fakeNotifier struct {
	sent []string
	fail bool
}

func (f *fakeNotifier) Send(email, code string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, code)
	return nil
}

func (f *fakeNotifier) lastCode() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}
