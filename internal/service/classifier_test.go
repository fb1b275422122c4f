package service

import (
	"context"
	"errors"
	"testing"

	"procurehub/internal/dto"
	"procurehub/internal/infra"
	"procurehub/internal/taxonomy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAI is a scriptable AIClient for oracle tests.
type fakeAI struct {
	textAnswer string
	textErr    error
	fileAnswer string
	fileErr    error

	textCalls    int
	fileCalls    int
	lastInput    string
	lastInstr    string
	lastFilename string
}

func (f *fakeAI) RespondText(_ context.Context, instructions, input string) (string, error) {
	f.textCalls++
	f.lastInstr = instructions
	f.lastInput = input
	return f.textAnswer, f.textErr
}

func (f *fakeAI) RespondWithFile(_ context.Context, filename string, _ []byte, _ string, _ *infra.JSONSchemaFormat) (string, error) {
	f.fileCalls++
	f.lastFilename = filename
	return f.fileAnswer, f.fileErr
}

var _ AIClient = (*fakeAI)(nil)

func sampleInput() dto.CreateRequestRequest {
	return dto.CreateRequestRequest{
		RequestorName: "Ada Lovelace",
		Department:    "Engineering",
		Title:         "Adobe Licenses",
		VendorName:    "Adobe Inc",
		TotalCost:     decimal.NewFromInt(1200),
		OrderLines: []dto.OrderLineInput{
			{Description: "Creative Cloud", UnitPrice: decimal.NewFromInt(60), Amount: decimal.NewFromInt(20), Unit: "licenses", TotalPrice: decimal.NewFromInt(1200)},
		},
	}
}

func TestPredictCleansOracleAnswer(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"029", "029"},
		{"029 - Hardware", "029"},
		{"029: Hardware", "029"},
		{"  029  ", "029"},
		{"031\n", "031"},
	}
	for _, tc := range cases {
		ai := &fakeAI{textAnswer: tc.raw}
		c := NewClassifier(ai, nil, 0)
		assert.Equal(t, tc.want, c.Predict(context.Background(), sampleInput()), "raw %q", tc.raw)
	}
}

func TestPredictDefaultsOnOracleFailure(t *testing.T) {
	ai := &fakeAI{textErr: errors.New("connection refused")}
	c := NewClassifier(ai, nil, 0)
	assert.Equal(t, taxonomy.DefaultCode, c.Predict(context.Background(), sampleInput()))
}

func TestPredictDefaultsOnUnknownCode(t *testing.T) {
	for _, raw := range []string{"999", "hardware", "", "029-Hardware"} {
		ai := &fakeAI{textAnswer: raw}
		c := NewClassifier(ai, nil, 0)
		assert.Equal(t, taxonomy.DefaultCode, c.Predict(context.Background(), sampleInput()), "raw %q", raw)
	}
}

func TestPredictPromptContainsRequestAndTaxonomy(t *testing.T) {
	ai := &fakeAI{textAnswer: "031"}
	c := NewClassifier(ai, nil, 0)
	c.Predict(context.Background(), sampleInput())

	require.Equal(t, 1, ai.textCalls)
	assert.Contains(t, ai.lastInput, "Title: Adobe Licenses")
	assert.Contains(t, ai.lastInput, "Vendor: Adobe Inc")
	assert.Contains(t, ai.lastInput, "Requestor: Ada Lovelace")
	assert.Contains(t, ai.lastInput, "Creative Cloud")
	assert.Contains(t, ai.lastInput, "031: Information Technology - Software")
	assert.Contains(t, ai.lastInstr, "Output only the code")
}

func TestCleanCode(t *testing.T) {
	assert.Equal(t, "029", CleanCode("029"))
	assert.Equal(t, "029", CleanCode("029 - Hardware"))
	assert.Equal(t, "029", CleanCode("029: Hardware"))
	assert.Equal(t, "029", CleanCode(" 029 "))
	assert.Equal(t, "", CleanCode(""))
	assert.Equal(t, "", CleanCode(": Hardware"))
}
