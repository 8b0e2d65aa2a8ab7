package models

import "time"

type Site struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GroupID     uint      `gorm:"column:group_id;not null;index" json:"group_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	URL         string    `gorm:"column:url;type:text;not null" json:"url"`
	Icon        string    `gorm:"type:text" json:"icon"`
	Description string    `gorm:"type:text" json:"description"`
	Notes       string    `gorm:"type:text" json:"notes"`
	OrderNum    int       `gorm:"column:order_num;not null;default:0" json:"order_num"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Site) TableName() string { return "sites" }
