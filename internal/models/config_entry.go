package models

import "time"

// ConfigEntry stores arbitrary key/value settings managed via the dashboard UI.
type ConfigEntry struct {
	Key       string    `gorm:"size:128;primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ConfigEntry) TableName() string { return "configs" }
