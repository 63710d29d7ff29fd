package services

import "errors"

// ErrNotFound is what AuthStore implementations return for missing rows,
// so the services never see storage-engine error types.
var ErrNotFound = errors.New("record not found")

// ErrorKind tags every failure the auth flows can surface. Controllers map
// kinds onto HTTP statuses; messages are safe to show to clients.
type ErrorKind string

const (
	KindUserNotFound           ErrorKind = "user_not_found"
	KindInvalidOrExpiredOTP    ErrorKind = "invalid_or_expired_otp"
	KindProfileAlreadyComplete ErrorKind = "profile_already_complete"
	KindProfileNotFound        ErrorKind = "profile_not_found"
	KindValidationFailed       ErrorKind = "validation_failed"
	KindInvalidToken           ErrorKind = "invalid_token"
	KindStorageFailure         ErrorKind = "storage_failure"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func errOf(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// internalErr masks storage and transport detail behind one generic message.
// The underlying error is logged at the call site, never returned upward.
func internalErr() *Error {
	return &Error{Kind: KindStorageFailure, Message: "something went wrong, please try again"}
}
