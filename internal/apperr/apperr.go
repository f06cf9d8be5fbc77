package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies a failure so the HTTP boundary can pick a status code
// without inspecting error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a typed domain failure. Services return these; the handlers
// map them to the response envelope.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Forbidden(code, message string) *Error {
	return New(KindForbidden, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

// Failures shared across the matching and chat services.
var (
	ErrPreferenceNotConfigured = NotFound("PREFERENCE_NOT_CONFIGURED", "matching preference is not configured")
	ErrPreferenceExists        = Conflict("PREFERENCE_EXISTS", "matching preference already exists")
	ErrPreferenceInactive      = Validation("PREFERENCE_INACTIVE", "matching preference is deactivated")
	ErrMatchingNotFound        = NotFound("MATCHING_NOT_FOUND", "matching not found")
	ErrMatchingClosed          = Conflict("MATCHING_CLOSED", "matching is already completed or blocked")
	ErrInvalidMatching         = Forbidden("INVALID_MATCHING", "matching is not active for this user")
	ErrEmptyMessage            = Validation("EMPTY_MESSAGE", "message text must not be empty")
	ErrMessageNotFound         = NotFound("MESSAGE_NOT_FOUND", "message not found")
	ErrNotMessageSender        = Forbidden("NOT_MESSAGE_SENDER", "only the sender can delete a message")
	ErrProfileNotFound         = NotFound("PROFILE_NOT_FOUND", "profile not found")
	ErrUserNotFound            = NotFound("USER_NOT_FOUND", "user not found")
)

// Map converts repo/infra errors into typed domain errors. Keeps the
// service layer clean by centralizing the translation.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("NOT_FOUND", "record not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("ALREADY_EXISTS", "resource already exists")
	}

	return New(KindInternal, "INTERNAL", "internal server error")
}

// HTTPStatus returns the status code for an error per the API taxonomy.
// Unclassified errors collapse to 500.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
