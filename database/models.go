// Package database provides database connection management for the freight
// rates query service.
//
// This package includes:
//   - Database connection management using GORM and PostgreSQL
//   - Idempotent schema initialization for the reference and fact tables
//   - Error wrapping with operation context
//
// Data Models:
//
//	All data models (Region, Port, Price) are defined in the models_pkg
//	package to avoid circular import dependencies.
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "freight-rates-api/database/models_pkg"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance. It serves as the central connection point for all
// database operations in the application.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	// Configure connection pool - read-only query workload
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{db: db}, nil
}

// InitSchema creates the reference and fact tables if they do not exist.
// Regions and ports are managed via AutoMigrate; the prices fact table has
// no primary key (append-only samples), so it is created manually.
func (d *Database) InitSchema() error {
	if err := d.db.AutoMigrate(&models.Region{}, &models.Port{}); err != nil {
		return WrapDBError("InitSchema", err)
	}

	if err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS prices (
			orig_code VARCHAR(5) NOT NULL,
			dest_code VARCHAR(5) NOT NULL,
			day DATE NOT NULL,
			price DOUBLE PRECISION NOT NULL
		)
	`).Error; err != nil {
		return WrapDBError("InitSchema", err)
	}

	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_prices_day_route
		ON prices (day, orig_code, dest_code)
	`).Error; err != nil {
		return WrapDBError("InitSchema", err)
	}

	return nil
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
