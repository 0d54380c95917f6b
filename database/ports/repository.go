// Package ports answers existence questions about port reference data.
package ports

import (
	"gorm.io/gorm"

	"freight-rates-api/database"
	models "freight-rates-api/database/models_pkg"
)

// Repository handles database operations for ports
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new ports repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CodeExists reports whether a port row with the exact code exists.
func (r *Repository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Port{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, database.WrapDBError("CodeExists", err)
	}
	return count > 0, nil
}
