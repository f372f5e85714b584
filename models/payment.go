package models

import "time"

// Accepted payment channels.
const (
	MethodCash         = "Cash"
	MethodBankTransfer = "Bank Transfer"
	MethodESewa        = "E-Sewa"
	MethodKhalti       = "Khalti"
	MethodCheque       = "Cheque"
)

// PaymentMethods lists the accepted channels in display order.
var PaymentMethods = []string{MethodCash, MethodBankTransfer, MethodESewa, MethodKhalti, MethodCheque}

type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookingID     uint      `gorm:"column:booking_id;index" json:"bookingId"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `gorm:"column:payment_date" json:"paymentDate"`
	PaymentMethod string    `gorm:"column:payment_method;size:20" json:"paymentMethod"`
	Notes         string    `gorm:"size:255" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
