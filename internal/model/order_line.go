package model

import "github.com/shopspring/decimal"

// OrderLine is one line item of a procurement request. Lines are created
// only together with their request and are immutable afterwards; they go
// away with the parent via the cascading FK.
type OrderLine struct {
	ID          uint `gorm:"primaryKey"`
	RequestID   uint `gorm:"index;not null"`
	Description string
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,2)"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,3)"`
	Unit        string
	TotalPrice  decimal.Decimal `gorm:"type:decimal(14,2)"`
}
