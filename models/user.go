package models

import "time"

// Staff/admin roles. Customer principals live in their own table and
// never share this role space.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:150" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Role      string    `gorm:"size:20;default:Staff" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
