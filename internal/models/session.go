package models

import (
	"encoding/json"
	"time"
)

const (
	SessionStatusPending  = "pending"
	SessionStatusRealized = "realized"
	SessionStatusCanceled = "canceled"
)

type Session struct {
	ID uint `gorm:"primaryKey" json:"sessao_id"`

	ClienteID uint    `gorm:"not null;index" json:"cliente_id"`
	Cliente   *Client `gorm:"foreignKey:ClienteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cliente,omitempty"`
	UsuarioID uint    `gorm:"not null;index" json:"usuario_id"`
	Usuario   *User   `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DataAtendimento time.Time `gorm:"type:timestamptz;not null;index" json:"data_atendimento"`
	ValorSessao     float64   `gorm:"type:decimal(10,2);not null" json:"valor_sessao"`
	NumeroSessao    int       `gorm:"not null" json:"numero_sessao"`
	Descricao       string    `gorm:"size:240" json:"descricao"`

	Status string  `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Motivo *string `gorm:"size:255" json:"motivo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON keeps the realizado/cancelado flags API clients rely on.
func (s Session) MarshalJSON() ([]byte, error) {
	type session Session
	return json.Marshal(struct {
		session
		Realizado bool `json:"realizado"`
		Cancelado bool `json:"cancelado"`
	}{
		session:   session(s),
		Realizado: s.Status == SessionStatusRealized,
		Cancelado: s.Status == SessionStatusCanceled,
	})
}
