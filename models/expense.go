package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category  string          `gorm:"type:varchar(50);index" json:"category"`
	SpentAt   time.Time       `gorm:"not null" json:"spent_at"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
