package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every validation failure (bad signature, malformed
// structure, expiry). Callers never learn which one it was.
var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	UserID uint
	Email  string
}

// TokenIssuer mints the two classes of bearer token: short-lived ones while
// the profile is incomplete, long-lived ones once it is complete. Claims are
// always exactly {userId, email, exp} — profile state is never embedded, so
// an already-issued token keeps its class until it expires.
type TokenIssuer struct {
	secret  []byte
	tempTTL time.Duration
	permTTL time.Duration
	now     func() time.Time
}

func NewTokenIssuer(secret string, tempTTL, permTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:  []byte(secret),
		tempTTL: tempTTL,
		permTTL: permTTL,
		now:     time.Now,
	}
}

func (ti *TokenIssuer) Issue(userID uint, email string, profileComplete bool) (string, error) {
	ttl := ti.tempTTL
	if profileComplete {
		ttl = ti.permTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    ti.now().Add(ttl).Unix(),
	})
	return token.SignedString(ti.secret)
}

// Validate checks signature and expiry together and fails closed.
func (ti *TokenIssuer) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return ti.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return ti.now() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	id, ok := claims["userId"].(float64) // JSON numbers decode as float64
	if !ok || id <= 0 {
		return nil, ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: uint(id), Email: email}, nil
}
