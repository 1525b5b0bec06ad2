package models

import "time"

type GeneratedImage struct {
	ID     uint  `gorm:"primaryKey" json:"image_id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL    string `gorm:"size:500;not null" json:"image"`
	Prompt string `gorm:"type:text" json:"prompt"`

	CreatedAt time.Time `json:"created_at"`
}
