package infra

// pdf.go — request summary PDF export using go-pdf/fpdf.
// Renders an A4 sheet with the request header fields, the order-line table,
// and the total. The output file is saved to storagePath/request_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"procurehub/internal/model"
	"procurehub/internal/taxonomy"

	"github.com/go-pdf/fpdf"
)

// GenerateRequestPDF writes a summary PDF for a stored procurement request.
// storagePath is created if needed. Returns the path of the generated file.
func GenerateRequestPDF(req *model.Request, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("request_%d.pdf", req.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, fmt.Sprintf("Procurement Request #%d", req.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, req.CreatedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Request fields ───────────────────────────────────────────────────────
	groupLabel := req.CommodityGroupID
	if g, ok := taxonomy.Lookup(req.CommodityGroupID); ok {
		groupLabel = fmt.Sprintf("%s - %s", g.Code, g.Label)
	}
	fields := []struct{ label, value string }{
		{"Title", req.Title},
		{"Requestor", req.RequestorName},
		{"Department", req.Department},
		{"Vendor", req.VendorName},
		{"VAT ID", req.VatID},
		{"Commodity group", groupLabel},
		{"Status", req.Status},
	}
	for _, f := range fields {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, f.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-45, 6, f.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// ── Order lines ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(85, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range req.OrderLines {
		pdf.CellFormat(85, 6, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, line.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, line.Amount.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, line.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, line.TotalPrice.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, "Total cost", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, req.TotalCost.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
