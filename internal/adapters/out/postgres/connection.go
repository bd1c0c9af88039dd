// Package postgres opens the GORM connection used by the update journal and
// owns its schema migration. Table-specific persistence lives in the
// sub-packages.
package postgres

import (
	"context"
	"fmt"

	"tracker/internal/adapters/out/postgres/journalrepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Settings describe a PostgreSQL connection.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the settings as a libpq keyword/value connection string.
func (s Settings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.DBName, sslMode,
	)
}

// Open connects to dsn, verifies the connection and migrates the journal schema.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the tracker writes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&journalrepo.UpdateRecordDTO{}); err != nil {
		return fmt.Errorf("migrate update journal: %w", err)
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
