package comparison

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("report.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("REPORT.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("report.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("-"))
}

func TestDecode_JSONReport(t *testing.T) {
	data := []byte(`{
  "id": "cmp-1",
  "title": "MSA 2025 vs 2026",
  "contract1_name": "msa-2025.pdf",
  "contract2_name": "msa-2026.pdf",
  "risk_score1": 35,
  "risk_score2": 60,
  "differences": [
    {
      "category": "Termination",
      "section": "§12.1",
      "contract1": "Die Kündigungsfrist beträgt 3 Monate",
      "contract2": "Die Kündigungsfrist beträgt 6 Monate",
      "severity": "HIGH",
      "impact": "Longer lock-in.",
      "recommendation": "Negotiate back to 3 months."
    }
  ]
}`)

	r, err := Decode(data, FormatJSON, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "cmp-1", r.ID)
	assert.Equal(t, "MSA 2025 vs 2026", r.Title)
	require.NotNil(t, r.RiskScore2)
	assert.Equal(t, 60, *r.RiskScore2)
	require.Len(t, r.Differences, 1)
	assert.Equal(t, SeverityHigh, r.Differences[0].Severity)
	assert.Equal(t, "§12.1", r.Differences[0].Section)
	assert.Equal(t, fixedNow, r.CreatedAt)
}

func TestDecode_JSONArray(t *testing.T) {
	data := []byte(`[{"category":"Payment","severity":"low"},{"category":"Liability","severity":"critical"}]`)

	r, err := Decode(data, FormatJSON, fixedNow)
	require.NoError(t, err)

	require.Len(t, r.Differences, 2)
	assert.Equal(t, SeverityCritical, r.Differences[1].Severity)
	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err, "missing IDs are assigned a UUID")
}

func TestDecode_YAML(t *testing.T) {
	t.Run("report", func(t *testing.T) {
		data := []byte(`
title: Lease
differences:
  - category: Rent
    section: "3"
    contract1: Rent is due monthly
    contract2: Rent is due quarterly
    severity: Medium
`)
		r, err := Decode(data, FormatYAML, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "Lease", r.Title)
		require.Len(t, r.Differences, 1)
		assert.Equal(t, SeverityMedium, r.Differences[0].Severity)
	})

	t.Run("list", func(t *testing.T) {
		data := []byte("- category: Rent\n  severity: low\n- category: Deposit\n  severity: high\n")
		r, err := Decode(data, FormatYAML, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, []string{"Rent", "Deposit"}, r.Categories())
	})
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{name: "empty json", data: "  ", format: FormatJSON},
		{name: "malformed json", data: `{"differences": [}`, format: FormatJSON},
		{name: "empty yaml", data: "", format: FormatYAML},
		{name: "malformed yaml", data: "differences: [", format: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format, fixedNow)
			assert.Error(t, err)
		})
	}
}
