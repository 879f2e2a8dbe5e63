package models

import "time"

// Table is a physical restaurant table. Occupied and OrderID move together:
// a table is occupied exactly when an order reference is set.
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"type:varchar(10);not null" json:"number"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Location  string    `gorm:"type:varchar(50)" json:"location"`
	Occupied  bool      `gorm:"not null;default:false" json:"occupied"`
	OrderID   *uint     `json:"order_id,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
