package taxonomy

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsCompleteAndOrdered(t *testing.T) {
	gs := Groups()
	require.Len(t, gs, 50)

	seen := make(map[string]bool)
	for i, g := range gs {
		assert.Equal(t, fmt.Sprintf("%03d", i+1), g.Code)
		assert.NotEmpty(t, g.Label)
		assert.False(t, seen[g.Code], "duplicate code %s", g.Code)
		seen[g.Code] = true
	}
}

func TestGroupsReturnsCopy(t *testing.T) {
	gs := Groups()
	gs[0].Label = "mutated"
	g, ok := Lookup("001")
	require.True(t, ok)
	assert.Equal(t, "General Services - Accommodation Rentals", g.Label)
}

func TestLookupAndValid(t *testing.T) {
	g, ok := Lookup("029")
	require.True(t, ok)
	assert.Equal(t, "Information Technology - Hardware", g.Label)

	assert.True(t, Valid(DefaultCode))
	assert.False(t, Valid("999"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("29")) // codes are zero-padded
}

func TestDefaultCodeIsMiscellaneous(t *testing.T) {
	g, ok := Lookup(DefaultCode)
	require.True(t, ok)
	assert.Contains(t, g.Label, "Miscellaneous")
}

func TestPromptBlock(t *testing.T) {
	block := PromptBlock()
	assert.Contains(t, block, "009: General Services - Miscellaneous Services")
	assert.Contains(t, block, "050: Production - Maintenance and Repairs")
	assert.Equal(t, 50, strings.Count(block, "\n"))
}
