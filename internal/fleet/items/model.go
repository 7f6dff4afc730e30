package items

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DB row (scan target). DATE columns come back as NULLable times with
// parseTime=true; absent means "not tracked", not zero.
type itemRow struct {
	ItemID            uint64
	Company           string
	Category          string
	Type              string
	Code              string
	Model             string
	PlateNo           string
	SerialNo          string
	CurrentLocation   string
	Driver            string
	PermitExpiry      sql.NullTime
	PuspakomExpiry    sql.NullTime
	InsuranceExpiry   sql.NullTime
	LoanDueDate       sql.NullTime
	LoanMonthlyAmount decimal.NullDecimal
	Status            string
	Remarks           string
	CreatedOn         time.Time
}

// Service ↔ Store model.
type Item struct {
	ItemID            uint64
	Company           string
	Category          string
	Type              string
	Code              string
	Model             string
	PlateNo           string
	SerialNo          string
	CurrentLocation   string
	Driver            string
	PermitExpiry      *time.Time
	PuspakomExpiry    *time.Time
	InsuranceExpiry   *time.Time
	LoanDueDate       *time.Time
	LoanMonthlyAmount decimal.NullDecimal
	Status            string
	Remarks           string
	CreatedOn         time.Time
}

func (r itemRow) toModel() Item {
	return Item{
		ItemID:            r.ItemID,
		Company:           r.Company,
		Category:          r.Category,
		Type:              r.Type,
		Code:              r.Code,
		Model:             r.Model,
		PlateNo:           r.PlateNo,
		SerialNo:          r.SerialNo,
		CurrentLocation:   r.CurrentLocation,
		Driver:            r.Driver,
		PermitExpiry:      nullTimePtr(r.PermitExpiry),
		PuspakomExpiry:    nullTimePtr(r.PuspakomExpiry),
		InsuranceExpiry:   nullTimePtr(r.InsuranceExpiry),
		LoanDueDate:       nullTimePtr(r.LoanDueDate),
		LoanMonthlyAmount: r.LoanMonthlyAmount,
		Status:            r.Status,
		Remarks:           r.Remarks,
		CreatedOn:         r.CreatedOn,
	}
}

func (it Item) toDTO(today time.Time) ItemResponse {
	var amount *string
	if it.LoanMonthlyAmount.Valid {
		v := it.LoanMonthlyAmount.Decimal.String()
		amount = &v
	}
	return ItemResponse{
		ItemID:            it.ItemID,
		Company:           it.Company,
		Category:          it.Category,
		Type:              it.Type,
		Code:              it.Code,
		Model:             it.Model,
		PlateNo:           it.PlateNo,
		SerialNo:          it.SerialNo,
		CurrentLocation:   it.CurrentLocation,
		Driver:            it.Driver,
		PermitExpiry:      dateStringPtr(it.PermitExpiry),
		PuspakomExpiry:    dateStringPtr(it.PuspakomExpiry),
		InsuranceExpiry:   dateStringPtr(it.InsuranceExpiry),
		LoanDueDate:       dateStringPtr(it.LoanDueDate),
		LoanMonthlyAmount: amount,
		Status:            it.Status,
		Remarks:           it.Remarks,
		CreatedOn:         it.CreatedOn,
		ExpiringSoon:      IsFlagged(it, today),
	}
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func dateStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(DateLayout)
	return &v
}
