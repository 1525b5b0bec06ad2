package models

import "time"

// Cliente do tatuador, sem login
type Client struct {
	ID     uint  `gorm:"primaryKey" json:"client_id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Nome      string `gorm:"size:50;not null;index" json:"nome"`
	Telefone  string `gorm:"size:20;index" json:"telefone"`
	Descricao string `gorm:"size:480" json:"descricao"`
	Endereco  string `gorm:"size:255" json:"endereco"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
