package db

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres using dsn.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database url is not set")
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Migrate runs GORM auto-migrations for the snapshot table. cmd/migrate
// applies the same schema from db/migrations.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	return conn.AutoMigrate(&StoreSnapshot{})
}
