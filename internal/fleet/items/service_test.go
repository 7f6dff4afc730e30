package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validRequest() ItemRequest {
	return ItemRequest{
		Company:  "LESTARY",
		Category: CategoryVehicle,
		Type:     "Car",
		Code:     "LST-001",
		Status:   "Active",
	}
}

func TestFromRequestValid(t *testing.T) {
	req := validRequest()
	req.InsuranceExpiry = strPtr("2026-04-01")
	req.LoanMonthlyAmount = strPtr("1250.50")

	it, err := fromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "LST-001", it.Code)
	require.NotNil(t, it.InsuranceExpiry)
	assert.Equal(t, "2026-04-01", it.InsuranceExpiry.Format(DateLayout))
	assert.Nil(t, it.PermitExpiry)
	require.True(t, it.LoanMonthlyAmount.Valid)
	assert.Equal(t, "1250.5", it.LoanMonthlyAmount.Decimal.String())
}

func TestFromRequestRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ItemRequest)
	}{
		{"unknown company", func(r *ItemRequest) { r.Company = "SOMEONE ELSE" }},
		{"bad category", func(r *ItemRequest) { r.Category = "Boat" }},
		{"blank code", func(r *ItemRequest) { r.Code = "   " }},
		{"malformed date", func(r *ItemRequest) { r.PermitExpiry = strPtr("01/04/2026") }},
		{"negative amount", func(r *ItemRequest) { r.LoanMonthlyAmount = strPtr("-10") }},
		{"non-numeric amount", func(r *ItemRequest) { r.LoanMonthlyAmount = strPtr("lots") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := fromRequest(req)
			require.Error(t, err)
			api, ok := err.(*APIError)
			require.True(t, ok)
			assert.Equal(t, CodeInvalidArgument, api.Code)
		})
	}
}

func TestFromRequestEmptyOptionalStrings(t *testing.T) {
	// Empty-string dates mean absent, same as omitting the field.
	req := validRequest()
	req.InsuranceExpiry = strPtr("")
	req.LoanMonthlyAmount = strPtr(" ")

	it, err := fromRequest(req)
	require.NoError(t, err)
	assert.Nil(t, it.InsuranceExpiry)
	assert.False(t, it.LoanMonthlyAmount.Valid)
}

func TestFreeTextTypeAccepted(t *testing.T) {
	req := validRequest()
	req.Type = "Road Train" // not in TypeSuggestions
	_, err := fromRequest(req)
	assert.NoError(t, err)
}
