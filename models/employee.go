package models

import "time"

type Employee struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	ContractHours int       `gorm:"not null" json:"contract_hours"`
	WorkedHours   int       `gorm:"not null;default:0" json:"worked_hours"`
	Post          string    `gorm:"type:varchar(50)" json:"post"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
