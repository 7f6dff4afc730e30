package items

import (
	"sort"
	"time"
)

// Days an upcoming expiry counts as "soon". Also the width of the monthly
// report window (inclusive on both ends, so a 31-day span).
const ExpiryHorizonDays = 30

// DateOnly strips the clock from t, keeping the calendar date in t's
// location. All expiry comparisons happen on these.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsFlagged reports whether it needs attention on the dashboard: any of the
// three expiry dates is present and on or before today+30d. This is a
// ceiling test, deliberately: a date that expired a year ago still flags.
// A record with no expiry dates at all never flags.
func IsFlagged(it Item, today time.Time) bool {
	ceiling := DateOnly(today).AddDate(0, 0, ExpiryHorizonDays)
	for _, d := range expiryDates(it) {
		if d != nil && !DateOnly(*d).After(ceiling) {
			return true
		}
	}
	return false
}

// InWindow reports whether any of the three expiry dates falls inside the
// closed interval [start, end]. Unlike IsFlagged, dates before start do not
// match; the monthly report only covers what expires within the window.
func InWindow(it Item, start, end time.Time) bool {
	lo, hi := DateOnly(start), DateOnly(end)
	for _, d := range expiryDates(it) {
		if d == nil {
			continue
		}
		v := DateOnly(*d)
		if !v.Before(lo) && !v.After(hi) {
			return true
		}
	}
	return false
}

// SortByInsurance orders ascending by insurance_expiry with absent values
// last. The other two dates never affect the order; that is how the admin
// table has always sorted.
func SortByInsurance(list []Item) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].InsuranceExpiry, list[j].InsuranceExpiry
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

func expiryDates(it Item) [3]*time.Time {
	return [3]*time.Time{it.InsuranceExpiry, it.PuspakomExpiry, it.PermitExpiry}
}
