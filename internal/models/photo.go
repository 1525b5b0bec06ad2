package models

import "time"

type Photo struct {
	ID     uint  `gorm:"primaryKey" json:"photo_id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Key is the object key in the bucket; URL is derived from it.
	Key string `gorm:"column:url;size:255;not null" json:"-"`
	URL string `gorm:"-" json:"url"`

	Titulo    string `gorm:"size:100" json:"titulo"`
	Descricao string `gorm:"size:255" json:"descricao"`

	CreatedAt time.Time `json:"created_at"`
}
