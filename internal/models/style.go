package models

// Estilo de tatuagem (tabela de referência)
type Style struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:50;uniqueIndex;not null" json:"nome"`
}
