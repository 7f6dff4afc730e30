package items

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// Column order matches the table definition; the export is meant to open in
// a spreadsheet looking like the admin grid.
var csvHeader = []string{
	"item_id", "company", "category", "type", "code", "model", "plate_no", "serial_no",
	"current_location", "driver", "permit_expiry", "puspakom_expiry", "insurance_expiry",
	"loan_due_date", "loan_monthly_amount", "status", "remarks", "created_on",
}

// WriteCSV renders the full export: header row plus one row per record,
// absent values as empty cells.
func WriteCSV(w io.Writer, list []Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range list {
		rec := []string{
			strconv.FormatUint(it.ItemID, 10),
			it.Company,
			it.Category,
			it.Type,
			it.Code,
			it.Model,
			it.PlateNo,
			it.SerialNo,
			it.CurrentLocation,
			it.Driver,
			csvDate(it.PermitExpiry),
			csvDate(it.PuspakomExpiry),
			csvDate(it.InsuranceExpiry),
			csvDate(it.LoanDueDate),
			csvAmount(it),
			it.Status,
			it.Remarks,
			it.CreatedOn.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func csvAmount(it Item) string {
	if !it.LoanMonthlyAmount.Valid {
		return ""
	}
	return it.LoanMonthlyAmount.Decimal.String()
}
