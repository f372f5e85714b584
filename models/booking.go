package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking statuses. Cancelled and Completed are terminal only for the
// customer self-service paths; staff may write any status.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventType string         `gorm:"size:255" json:"eventType"`
	EventDate datatypes.Date `gorm:"column:event_date;index" json:"eventDate"`

	// Times of day as zero-padded "HH:MM" so lexical comparison matches
	// chronological comparison, same as the SQL TIME column they map to.
	StartTime string `gorm:"column:start_time;size:8" json:"startTime"`
	EndTime   string `gorm:"column:end_time;size:8" json:"endTime"`

	GuestCount  int     `gorm:"column:guest_count" json:"guestCount"`
	TotalAmount float64 `gorm:"column:total_amount;default:0" json:"totalAmount"`
	Status      string  `gorm:"size:20;default:Pending;index" json:"status"`
	Notes       string  `gorm:"type:text" json:"notes"`

	// Resolved meal selection per slot (Lunch/Snack/Dinner), stored at
	// write time; never re-resolved from the catalog on read.
	MealPlan datatypes.JSON `gorm:"column:meal_plan" json:"mealPlan,omitempty"`

	CustomerID      uint `gorm:"column:customer_id;index" json:"customerId"`
	HandledByUserID uint `gorm:"column:handled_by_user_id" json:"handledByUserId"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Handler  *User     `gorm:"foreignKey:HandledByUserID" json:"handler,omitempty"`
	Payments []Payment `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingWithTotals is the staff/admin read view: the stored row plus
// the derived ledger figures, recomputed on every read.
type BookingWithTotals struct {
	Booking
	PaidAmount float64 `json:"paidAmount"`
	Balance    float64 `json:"balance"`
}
