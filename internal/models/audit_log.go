package models

import "time"

// AuditLog is one entry of a user's activity trail. Metadata holds a JSON
// document and stays NULL when the event carried none.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index:idx_audit_user_created,priority:1" json:"user_id"`
	Action string `gorm:"size:50;not null;index" json:"action"`
	Entity string `gorm:"size:50" json:"entity"`

	EntityID *uint   `json:"entity_id,omitempty"`
	Metadata *string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_user_created,priority:2" json:"created_at"`
}
