package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers on this API, matching what the intake
	// frontend and the extraction oracle produce.
	decimal.MarshalJSONWithoutQuotes = true
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderLineInput struct {
	Description string          `json:"description" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"min=0"`
	Amount      decimal.Decimal `json:"amount"      validate:"min=0"`
	Unit        string          `json:"unit"`
	TotalPrice  decimal.Decimal `json:"total_price" validate:"min=0"`
}

// CreateRequestRequest is the create payload. It doubles as the extraction
// result: a successful /extract call returns exactly this shape, ready to be
// resubmitted to POST /requests/.
// CommodityGroupID left empty triggers auto-classification on create.
type CreateRequestRequest struct {
	RequestorName    string           `json:"requestor_name"  validate:"required"`
	Department       string           `json:"department"      validate:"required"`
	Title            string           `json:"title"           validate:"required"`
	VendorName       string           `json:"vendor_name"     validate:"required"`
	VatID            string           `json:"vat_id"`
	CommodityGroupID string           `json:"commodity_group_id"`
	TotalCost        decimal.Decimal  `json:"total_cost"      validate:"min=0"`
	OrderLines       []OrderLineInput `json:"order_lines"     validate:"dive"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// RequestFilter carries the pagination query parameters of GET /requests/.
type RequestFilter struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderLineResponse struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Unit        string          `json:"unit"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type RequestResponse struct {
	ID               uint                `json:"id"`
	RequestorName    string              `json:"requestor_name"`
	Department       string              `json:"department"`
	Title            string              `json:"title"`
	VendorName       string              `json:"vendor_name"`
	VatID            string              `json:"vat_id"`
	CommodityGroupID string              `json:"commodity_group_id"`
	TotalCost        decimal.Decimal     `json:"total_cost"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	OrderLines       []OrderLineResponse `json:"order_lines"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
