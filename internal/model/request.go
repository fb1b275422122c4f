package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request statuses used by the intake UI. Status is stored verbatim and is
// not validated against this set; these constants only cover defaults.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
	StatusRejected   = "Rejected"
)

// Request is a procurement request together with its order lines.
// CommodityGroupID references the taxonomy loosely: it is expected to match
// a taxonomy code but no foreign key is enforced.
type Request struct {
	ID               uint   `gorm:"primaryKey"`
	RequestorName    string `gorm:"index;not null"`
	Department       string
	Title            string
	VendorName       string
	VatID            string          `gorm:"column:vat_id"`
	CommodityGroupID string          `gorm:"column:commodity_group_id"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(14,2)"`
	Status           string          `gorm:"not null;default:'Open'"`
	CreatedAt        time.Time

	OrderLines []OrderLine `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (Request) TableName() string { return "procurement_requests" }
