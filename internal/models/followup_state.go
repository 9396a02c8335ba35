package models

import "time"

const (
	FollowUpPending   = "PENDIENTE"
	FollowUpContacted = "CONTACTADO"
	FollowUpScheduled = "AGENDADO"
	FollowUpLost      = "PERDIDO"
)

// Manual annotation layered on top of a follow-up event. Created lazily on
// the first staff action, never deleted — only archived.
type FollowUpState struct {
	SourceID string `gorm:"primaryKey;size:64" json:"source_id"`

	Status        string     `gorm:"size:20;default:'PENDIENTE'" json:"status"`
	Notes         string     `gorm:"size:255" json:"notes"`
	LastContactAt *time.Time `json:"last_contact_at"`
	Archived      bool       `json:"archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
