package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nattawatz/linkboard/internal/config"
	"github.com/nattawatz/linkboard/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Topic{}, &models.BoardConfig{}, &models.AuditLog{})
}

// SeedConfig guarantees the singleton config row exists. Safe to run on every boot.
func SeedConfig(db *gorm.DB) error {
	row := models.BoardConfig{ID: models.ConfigRowID}
	return db.FirstOrCreate(&row, models.BoardConfig{ID: models.ConfigRowID}).Error
}
