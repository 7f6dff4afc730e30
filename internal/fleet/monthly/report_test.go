package monthly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleettrack-backend/internal/fleet/items"
)

func TestBuildReport(t *testing.T) {
	list := []items.Item{
		{
			Company:         "LESTARY",
			Code:            "LST-001",
			Type:            "Car",
			InsuranceExpiry: date("2026-06-11"),
			PuspakomExpiry:  date("2026-06-20"),
		},
		{
			Company:      "JH CINTA MATA",
			Code:         "JH-EX-01",
			Type:         "Excavator",
			PermitExpiry: date("2026-06-15"),
		},
	}

	html, err := BuildReport(list)
	require.NoError(t, err)

	assert.Contains(t, html, "<h3>Fleet items with expiries in next 30 days</h3>")
	assert.Contains(t, html, "<th>Company</th><th>Code</th><th>Type</th><th>Insurance</th><th>Puspakom</th><th>Permit</th>")
	assert.Contains(t, html, "<td>LST-001</td>")
	assert.Contains(t, html, "<td>2026-06-11</td>")
	assert.Contains(t, html, "<td>2026-06-20</td>")
	// Absent dates render as empty cells.
	assert.Contains(t, html, "<td>JH-EX-01</td><td>Excavator</td><td></td><td></td><td>2026-06-15</td>")
}

func TestBuildReportEscapesText(t *testing.T) {
	list := []items.Item{
		{Company: "A <script>alert(1)</script>", Code: "X&Y", Type: "Car"},
	}
	html, err := BuildReport(list)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "X&amp;Y")
}
