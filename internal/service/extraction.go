package service

import (
	"context"
	"encoding/json"
	"strings"

	"procurehub/internal/dto"
	"procurehub/internal/infra"
	"procurehub/internal/taxonomy"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const extractInstruction = "Analyze this document visually. " +
	"Extract the procurement request details, paying special attention to the table structure for Order Lines. " +
	"Make sure that you include all alternative products as order lines as well."

// ExtractionService turns an uploaded document into a procurement-request
// draft. Extract is fail-soft: every failure (network, breaker open,
// malformed AI output) is logged and mapped to nil, so the boundary can tell
// the caller to fill the form manually. It never persists anything.
type ExtractionService interface {
	Extract(ctx context.Context, fileBytes []byte, filename string) *dto.CreateRequestRequest
}

type extractionService struct {
	ai     AIClient
	format *infra.JSONSchemaFormat
}

func NewExtractionService(ai AIClient) ExtractionService {
	return &extractionService{
		ai: ai,
		format: &infra.JSONSchemaFormat{
			Name:   "procurement_extraction",
			Schema: extractionSchema(),
		},
	}
}

func (s *extractionService) Extract(ctx context.Context, fileBytes []byte, filename string) *dto.CreateRequestRequest {
	text, err := s.ai.RespondWithFile(ctx, filename, fileBytes, extractInstruction, s.format)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("extraction failed")
		return nil
	}

	var draft dto.CreateRequestRequest
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("extraction returned malformed JSON")
		return nil
	}

	normalizeDraft(&draft)
	return &draft
}

// normalizeDraft treats the AI output as untrusted: trims strings, fills
// placeholder values for missing required fields, and clamps negative
// numbers so the draft is always a submittable create payload.
func normalizeDraft(d *dto.CreateRequestRequest) {
	d.RequestorName = strings.TrimSpace(d.RequestorName)
	d.Department = strings.TrimSpace(d.Department)
	d.Title = strings.TrimSpace(d.Title)
	d.VendorName = strings.TrimSpace(d.VendorName)
	d.VatID = strings.TrimSpace(d.VatID)
	d.CommodityGroupID = strings.TrimSpace(d.CommodityGroupID)

	if d.RequestorName == "" {
		d.RequestorName = "Unknown"
	}
	if d.Department == "" {
		d.Department = "Unknown"
	}
	if d.Title == "" {
		d.Title = "Untitled request"
	}
	if d.VendorName == "" {
		d.VendorName = "Unknown"
	}
	if d.TotalCost.IsNegative() {
		d.TotalCost = decimal.Zero
	}
	if d.OrderLines == nil {
		d.OrderLines = []dto.OrderLineInput{}
	}
	for i := range d.OrderLines {
		line := &d.OrderLines[i]
		line.Description = strings.TrimSpace(line.Description)
		line.Unit = strings.TrimSpace(line.Unit)
		if line.UnitPrice.IsNegative() {
			line.UnitPrice = decimal.Zero
		}
		if line.Amount.IsNegative() {
			line.Amount = decimal.Zero
		}
		if line.TotalPrice.IsNegative() {
			line.TotalPrice = decimal.Zero
		}
	}
}

// extractionSchema builds the JSON schema the AI output must conform to.
// Field descriptions steer the model the same way the form labels steer a
// human; the commodity-group description embeds the full taxonomy.
func extractionSchema() json.RawMessage {
	str := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}
	num := func(desc string) map[string]any {
		return map[string]any{"type": "number", "description": desc}
	}

	orderLine := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": str("Description of the product or service"),
			"unit_price":  num("Price per unit"),
			"amount":      num("Quantity of units"),
			"unit":        str("The unit of measure (e.g., 'licenses', 'hours', 'pcs')"),
			"total_price": num("Calculated total price for this line"),
		},
		"required":             []string{"description", "unit_price", "amount", "unit", "total_price"},
		"additionalProperties": false,
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"requestor_name": str("Full name of the person asking for the item. If unknown, use 'Unknown'."),
			"department":     str("Department of the requestor."),
			"vendor_name":    str("Name of the company providing the service/product."),
			"vat_id":         str("VAT ID (e.g., DE123456789). If not found, return an empty string."),
			"title":          str("A short, concise title for this request (e.g., 'Adobe Licenses')."),
			"total_cost":     num("The total cost of the offer."),
			"commodity_group_id": str("The best matching ID from the following list:\n" +
				taxonomy.PromptBlock() +
				"Use '" + taxonomy.DefaultCode + "' (Miscellaneous) if unsure."),
			"order_lines": map[string]any{"type": "array", "items": orderLine},
		},
		"required": []string{
			"requestor_name", "department", "vendor_name", "vat_id",
			"title", "total_cost", "commodity_group_id", "order_lines",
		},
		"additionalProperties": false,
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		// Static input; cannot fail at runtime.
		panic(err)
	}
	return raw
}
