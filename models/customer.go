package models

import "time"

// Customer is the self-service identity domain. Password is optional:
// walk-in customers recorded by staff have no login access.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Phone     string    `gorm:"uniqueIndex;size:20" json:"phone"`
	Email     *string   `gorm:"uniqueIndex;size:150" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
