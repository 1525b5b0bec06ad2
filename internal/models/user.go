package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey" json:"user_id"`
	Nome      string `gorm:"size:30;not null" json:"nome"`
	Sobrenome string `gorm:"size:30;not null" json:"sobrenome"`
	CPF       string `gorm:"size:14;not null" json:"cpf"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Senha     string `gorm:"size:255;not null" json:"-"`
	Telefone  string `gorm:"size:11" json:"telefone"`
	Whatsapp  string `gorm:"size:20" json:"whatsapp"`
	Instagram string `gorm:"size:100" json:"instagram"`
	Bio       string `gorm:"size:500" json:"bio"`
	Endereco  string `gorm:"size:255" json:"endereco"`

	// Foto holds the object key; FotoURL is derived at read time.
	Foto    string `gorm:"size:255" json:"-"`
	FotoURL string `gorm:"-" json:"foto"`

	// AuthID links the row to the external identity provider account.
	AuthID *string `gorm:"size:64;uniqueIndex" json:"-"`

	Styles []Style `gorm:"many2many:user_styles;constraint:OnDelete:CASCADE;" json:"especialidades"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
