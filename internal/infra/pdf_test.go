package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"procurehub/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestPDF(t *testing.T) {
	req := &model.Request{
		ID:               42,
		RequestorName:    "Ada Lovelace",
		Department:       "Engineering",
		Title:            "Adobe Licenses",
		VendorName:       "Adobe Inc",
		VatID:            "DE123456789",
		CommodityGroupID: "031",
		TotalCost:        decimal.NewFromInt(1200),
		Status:           model.StatusOpen,
		CreatedAt:        time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		OrderLines: []model.OrderLine{
			{Description: "Creative Cloud", UnitPrice: decimal.NewFromInt(60), Amount: decimal.NewFromInt(20), Unit: "licenses", TotalPrice: decimal.NewFromInt(1200)},
		},
	}

	dir := t.TempDir()
	path, err := GenerateRequestPDF(req, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "request_42.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateRequestPDFCreatesStorageDir(t *testing.T) {
	req := &model.Request{ID: 1, Title: "T", TotalCost: decimal.Zero, CreatedAt: time.Now()}
	dir := filepath.Join(t.TempDir(), "nested", "pdfs")

	path, err := GenerateRequestPDF(req, dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
