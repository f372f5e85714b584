package models

import "time"

type Inventory struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ItemName          string    `gorm:"column:item_name;uniqueIndex;size:255" json:"itemName"`
	Quantity          int       `gorm:"default:0" json:"quantity"`
	Unit              string    `gorm:"size:50" json:"unit"` // e.g. 'pcs', 'kgs', 'sets'
	LowStockThreshold int       `gorm:"column:low_stock_threshold;default:10" json:"lowStockThreshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
