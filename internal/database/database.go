package database

import (
	"errors"

	"github.com/campuslink/campuslink-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database wraps the gorm connection. The connection is created once at
// startup and injected here; repositories never reach for globals.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	// TranslateError surfaces unique-index violations as
	// gorm.ErrDuplicatedKey; the pairing and preference paths rely on it.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate syncs the schema. Exported so tests can run it against an
// in-memory sqlite connection.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.MatchingPreference{},
		&models.QueueEntry{},
		&models.Matching{},
		&models.ChatMessage{},
	)
}
