package database

import (
	"sync"

	"dealdesk/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbPath = "dealdesk.db"
)

// SetPath overrides the database file path. Must be called before the
// first GetDB.
func SetPath(path string) {
	dbPath = path
}

// GetDB returns the shared database handle, opening and migrating it on
// first use. TranslateError is on so unique-index violations come back as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func GetDB() *gorm.DB {
	dbOnce.Do(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			logging.Get().Fatal().Err(err).Str("path", dbPath).Msg("failed to open database")
		}

		if err := Migrate(db); err != nil {
			logging.Get().Fatal().Err(err).Msg("failed to migrate database")
		}
	})
	return db
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AdminUser{},
		&RawTweet{},
		&PendingPost{},
		&Post{},
		&Category{},
		&Bank{},
		&CardConfig{},
		&Comment{},
	)
}

// CloseDB closes the underlying connection. Called on shutdown.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logging.Get().Error().Err(err).Msg("failed to get underlying sql.DB")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logging.Get().Error().Err(err).Msg("failed to close database")
	}
}
