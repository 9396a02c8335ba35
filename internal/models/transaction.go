package models

import "time"

const (
	TransactionKindDeposit = "adelanto"
	TransactionKindClosing = "cierre"
)

// Venta / movimiento de caja. El total es la suma de sus pagos.
type Transaction struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	OccurredAt time.Time `json:"occurred_at"`

	// Snapshot of the client at sale time; the Client row may change later.
	ClientDocument string `gorm:"size:20;index" json:"client_document"`
	ClientName     string `gorm:"size:100" json:"client_name"`
	ClientPhone    string `gorm:"size:20" json:"client_phone"`

	ServiceType string `gorm:"size:100" json:"service_type"`
	Procedure   string `gorm:"size:100" json:"procedure"`

	Payments []Payment `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE;" json:"payments"`

	Cream   bool   `json:"cream"`
	Comment string `gorm:"size:255" json:"comment"`

	// Empty kind means a standalone sale.
	Kind string `gorm:"size:20;index" json:"kind"`

	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	Source string `gorm:"size:20;default:'manual'" json:"source"`

	CreatedAt time.Time `json:"created_at"`
}

type Payment struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	TransactionID string `gorm:"size:36;index" json:"transaction_id"`

	Method  string  `gorm:"size:50" json:"method"`
	RefCode string  `gorm:"size:50" json:"ref_code"`
	Amount  float64 `json:"amount"`
}

// Total suma los pagos; una transacción sin pagos aporta 0.
func (t *Transaction) Total() float64 {
	var sum float64
	for _, p := range t.Payments {
		sum += p.Amount
	}
	return sum
}
