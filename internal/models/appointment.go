package models

import "time"

const (
	SourceManual   = "manual"
	SourceImported = "import"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Assigned once at creation, echoed unchanged on every edit.
	BookingCode *string `gorm:"size:12;uniqueIndex" json:"booking_code"`

	Specialist string `gorm:"size:100;not null" json:"specialist"`

	ClientDocument string `gorm:"size:20;index" json:"client_document"`
	Client         Client `gorm:"foreignKey:ClientDocument;references:Document;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceType string `gorm:"size:100" json:"service_type"`
	Procedure   string `gorm:"size:100" json:"procedure"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Minutes actually spent, set on completion only.
	ActualDurationMin *int `json:"actual_duration_min"`

	// unset ("") | confirmed | rejected — meaningful only while scheduled.
	Reconfirmation string `gorm:"size:20" json:"reconfirmation"`

	// Deposit snapshot. DepositTransactionID points at the single
	// adelanto transaction; edits touch the snapshot, never the link.
	DepositAmount        *float64 `json:"deposit_amount"`
	DepositMethod        string   `gorm:"size:50" json:"deposit_method"`
	DepositRef           string   `gorm:"size:50" json:"deposit_ref"`
	DepositTransactionID *string  `gorm:"size:36" json:"deposit_transaction_id"`

	Source  string `gorm:"size:20;default:'manual'" json:"source"`
	Comment string `gorm:"size:255" json:"comment"`

	CreatedBy string `gorm:"size:100" json:"created_by"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	NoShowAt    *time.Time `json:"noshow_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
