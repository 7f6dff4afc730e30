package items

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	list := []Item{
		{
			ItemID: 1, Company: "LESTARY", Category: CategoryVehicle, Type: "Car",
			Code: "LST-001", Model: "Toyota Hilux", PlateNo: "ABC123",
			CurrentLocation: "HQ", Driver: "Ali",
			InsuranceExpiry: d("2026-04-01"),
			LoanMonthlyAmount: decimal.NullDecimal{
				Decimal: decimal.RequireFromString("1250.50"), Valid: true,
			},
			Status: "Active", Remarks: "with, comma", CreatedOn: created,
		},
		{
			ItemID: 2, Company: "PASTI JUTANIAGA", Category: CategoryMachinery,
			Code: "PJ-01", CreatedOn: created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, list))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "LESTARY", rows[1][1])
	assert.Equal(t, "2026-04-01", rows[1][12])
	assert.Equal(t, "1250.5", rows[1][14])
	assert.Equal(t, "with, comma", rows[1][16])

	// Absent dates and amount render as empty cells, not zero values.
	for _, idx := range []int{10, 11, 12, 13, 14} {
		assert.Empty(t, rows[2][idx])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
	assert.Equal(t, csvHeader, rows[0])
}
