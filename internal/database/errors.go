package database

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound and ErrDuplicate alias gorm's translated errors so
	// callers can match them without importing gorm. ErrDuplicate
	// requires the connection to be opened with TranslateError.
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey

	ErrDuplicatePairing = errors.New("active matching already exists for this pair")
	ErrMatchingClosed   = errors.New("matching is not active")
)
