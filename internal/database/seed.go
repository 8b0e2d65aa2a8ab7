package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/navdeck/navdeck/internal/models"
)

// SeedDefaults gives a fresh install one group to drop sites into and a
// couple of config keys the dashboard reads on load. Existing data is
// never touched.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Group{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&models.Group{Name: "General", OrderNum: 0}).Error; err != nil {
			return err
		}
		log.Println("Seeded default group: General")
	}

	defaults := []models.ConfigEntry{
		{Key: "theme", Value: "light"},
		{Key: "title", Value: "Navdeck"},
	}
	for _, entry := range defaults {
		var n int64
		if err := db.Model(&models.ConfigEntry{}).Where("key = ?", entry.Key).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}
