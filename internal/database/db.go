package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/navdeck/navdeck/internal/config"
	"github.com/navdeck/navdeck/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		// _fk=1 turns on foreign key enforcement so the sites->groups
		// cascade behaves like postgres.
		dsn := fmt.Sprintf("file:%s?_fk=1", cfg.SQLitePath)
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Group{}, &models.Site{}, &models.ConfigEntry{})
}
