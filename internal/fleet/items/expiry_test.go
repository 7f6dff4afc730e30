package items

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(s string) *time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestIsFlagged(t *testing.T) {
	today := *d("2026-06-15")

	tests := []struct {
		name string
		it   Item
		want bool
	}{
		{"no dates never flags", Item{}, false},
		{"expired a year ago still flags", Item{InsuranceExpiry: d("2025-06-15")}, true},
		{"exactly today flags", Item{InsuranceExpiry: d("2026-06-15")}, true},
		{"today+30 flags (boundary inclusive)", Item{InsuranceExpiry: d("2026-07-15")}, true},
		{"today+31 does not flag", Item{InsuranceExpiry: d("2026-07-16")}, false},
		{"puspakom alone flags", Item{PuspakomExpiry: d("2026-06-20")}, true},
		{"permit alone flags", Item{PermitExpiry: d("2026-01-01")}, true},
		{"all dates far out", Item{
			InsuranceExpiry: d("2027-01-01"),
			PuspakomExpiry:  d("2027-02-01"),
			PermitExpiry:    d("2027-03-01"),
		}, false},
		{"one near date among far ones", Item{
			InsuranceExpiry: d("2027-01-01"),
			PermitExpiry:    d("2026-06-20"),
		}, true},
		{"loan due date is not an expiry", Item{LoanDueDate: d("2026-06-16")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFlagged(tt.it, today))
		})
	}
}

func TestIsFlaggedIgnoresClockTime(t *testing.T) {
	// Late in the evening of the boundary day must still flag.
	today := time.Date(2026, 6, 15, 23, 59, 0, 0, time.Local)
	it := Item{InsuranceExpiry: d("2026-07-15")}
	assert.True(t, IsFlagged(it, today))
}

func TestInWindow(t *testing.T) {
	start := *d("2026-06-01")
	end := start.AddDate(0, 0, 30)

	tests := []struct {
		name string
		it   Item
		want bool
	}{
		{"exactly start included", Item{PermitExpiry: d("2026-06-01")}, true},
		{"exactly start+30 included", Item{PermitExpiry: d("2026-07-01")}, true},
		{"start+31 excluded", Item{PermitExpiry: d("2026-07-02")}, false},
		{"start-1 excluded (no ceiling here)", Item{PermitExpiry: d("2026-05-31")}, false},
		{"long expired excluded", Item{InsuranceExpiry: d("2024-01-01")}, false},
		{"no dates excluded", Item{}, false},
		{"any of the three counts", Item{
			InsuranceExpiry: d("2027-01-01"),
			PuspakomExpiry:  d("2026-06-10"),
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InWindow(tt.it, start, end))
		})
	}
}

func TestSortByInsurance(t *testing.T) {
	d1, d2 := d("2026-06-05"), d("2026-06-20")
	list := []Item{
		{Code: "C", InsuranceExpiry: nil, PermitExpiry: d("2026-06-01")},
		{Code: "B", InsuranceExpiry: d2},
		{Code: "A", InsuranceExpiry: d1},
	}
	SortByInsurance(list)

	got := []string{list[0].Code, list[1].Code, list[2].Code}
	// Absent insurance sorts last even though C's permit date is earliest.
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestSortByInsuranceStable(t *testing.T) {
	list := []Item{
		{Code: "X"},
		{Code: "Y"},
		{Code: "Z", InsuranceExpiry: d("2026-06-01")},
	}
	SortByInsurance(list)
	assert.Equal(t, "Z", list[0].Code)
	assert.Equal(t, "X", list[1].Code)
	assert.Equal(t, "Y", list[2].Code)
}
