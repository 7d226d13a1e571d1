package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func TestPlaybook(t *testing.T) {
	strategies := []models.Strategy{{
		ID: "2", Title: "Break & Retest", Type: "Trend Following", IsActive: true, WinRate: "50%",
		Rules: models.StrategyRules{
			Analysis: []string{"Identify key support/resistance levels on 4H/1H"},
			Risk:     []string{"R:R minimum 1:2"},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WritePlaybook(&buf, strategies))
	assert.Contains(t, buf.String(), "version: 1")
	assert.NotContains(t, buf.String(), "50%")

	back, err := ReadPlaybook(&buf)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "Break & Retest", back[0].Title)
	assert.Equal(t, strategies[0].Rules.Risk, back[0].Rules.Risk)
	assert.Empty(t, back[0].WinRate)
}

func TestReadPlaybook_Rejects(t *testing.T) {
	_, err := ReadPlaybook(strings.NewReader("version: 1\nstrategies:\n  - type: Scalp\n"))
	assert.Error(t, err)

	_, err = ReadPlaybook(strings.NewReader("version: 9\nstrategies: []\n"))
	assert.Error(t, err)
}
