package items

import (
	"context"
	"database/sql"
	"time"

	"fleettrack-backend/internal/platform/db"
)

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const itemColumns = `
	item_id, company, category, type, code, model, plate_no, serial_no,
	current_location, driver, permit_expiry, puspakom_expiry, insurance_expiry,
	loan_due_date, loan_monthly_amount, status, remarks, created_on`

// EnsureSchema creates the table on first boot. Idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const q = `
	CREATE TABLE IF NOT EXISTS fleet_items (
		item_id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		company             VARCHAR(100) NOT NULL,
		category            VARCHAR(20)  NOT NULL,
		type                VARCHAR(100) NOT NULL DEFAULT '',
		code                VARCHAR(50)  NOT NULL,
		model               VARCHAR(100) NOT NULL DEFAULT '',
		plate_no            VARCHAR(50)  NOT NULL DEFAULT '',
		serial_no           VARCHAR(50)  NOT NULL DEFAULT '',
		current_location    VARCHAR(100) NOT NULL DEFAULT '',
		driver              VARCHAR(100) NOT NULL DEFAULT '',
		permit_expiry       DATE NULL,
		puspakom_expiry     DATE NULL,
		insurance_expiry    DATE NULL,
		loan_due_date       DATE NULL,
		loan_monthly_amount DECIMAL(12,2) NULL,
		status              VARCHAR(50) NOT NULL DEFAULT '',
		remarks             TEXT,
		created_on          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := s.db.ExecContext(ctx, q)
	return err
}

// SeedIfEmpty inserts the two demo rows so a fresh install has something on
// the dashboard. No-op once real data exists.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	var c int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fleet_items`).Scan(&c); err != nil {
		return false, err
	}
	if c > 0 {
		return false, nil
	}
	samples := []Item{
		{
			Company: "LESTARY", Category: CategoryVehicle, Type: "Car", Code: "LST-001",
			Model: "Toyota Hilux", PlateNo: "ABC123", CurrentLocation: "HQ", Driver: "Ali",
			Status: "Active", Remarks: "Sample",
		},
		{
			Company: "JH CINTA MATA", Category: CategoryMachinery, Type: "Excavator", Code: "JH-EX-01",
			Model: "CAT 320", SerialNo: "SN-EX-001", CurrentLocation: "Site A", Driver: "Bob",
			Status: "Active", Remarks: "Sample",
		},
	}
	for _, it := range samples {
		if _, err := s.Insert(ctx, it); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *Store) Insert(ctx context.Context, it Item) (uint64, error) {
	const q = `
	INSERT INTO fleet_items
	(company, category, type, code, model, plate_no, serial_no, current_location, driver,
	 permit_expiry, puspakom_expiry, insurance_expiry, loan_due_date, loan_monthly_amount,
	 status, remarks, created_on)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q,
		it.Company, it.Category, it.Type, it.Code, it.Model, it.PlateNo, it.SerialNo,
		it.CurrentLocation, it.Driver,
		dateArg(it.PermitExpiry), dateArg(it.PuspakomExpiry), dateArg(it.InsuranceExpiry),
		dateArg(it.LoanDueDate), it.LoanMonthlyAmount, it.Status, it.Remarks,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update replaces every mutable field. created_on is never touched.
func (s *Store) Update(ctx context.Context, id uint64, it Item) error {
	const q = `
	UPDATE fleet_items SET
		company = ?, category = ?, type = ?, code = ?, model = ?, plate_no = ?, serial_no = ?,
		current_location = ?, driver = ?, permit_expiry = ?, puspakom_expiry = ?,
		insurance_expiry = ?, loan_due_date = ?, loan_monthly_amount = ?, status = ?, remarks = ?
	WHERE item_id = ?`
	res, err := s.db.ExecContext(ctx, q,
		it.Company, it.Category, it.Type, it.Code, it.Model, it.PlateNo, it.SerialNo,
		it.CurrentLocation, it.Driver,
		dateArg(it.PermitExpiry), dateArg(it.PuspakomExpiry), dateArg(it.InsuranceExpiry),
		dateArg(it.LoanDueDate), it.LoanMonthlyAmount, it.Status, it.Remarks,
		id,
	)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		// Either the row is gone or the update was a no-op; tell them apart.
		var one int
		if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM fleet_items WHERE item_id = ?`, id).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return sql.ErrNoRows
			}
			return err
		}
	}
	return nil
}

// Delete removes the row outright. There is no soft delete here.
func (s *Store) Delete(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fleet_items WHERE item_id = ?`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uint64) (*Item, error) {
	q := `SELECT ` + itemColumns + ` FROM fleet_items WHERE item_id = ?`
	row := s.db.QueryRowContext(ctx, q, id)
	var r itemRow
	if err := scanItem(row.Scan, &r); err != nil {
		return nil, err
	}
	it := r.toModel()
	return &it, nil
}

func (s *Store) ListAll(ctx context.Context, limit int) ([]Item, error) {
	return listAll(ctx, s.db, limit)
}

// ListFlagged returns rows where any expiry date is on or before ceiling.
// NULL dates never match on their own; already-expired dates do.
func (s *Store) ListFlagged(ctx context.Context, ceiling time.Time, limit int) ([]Item, error) {
	return listFlagged(ctx, s.db, ceiling, limit)
}

// ListInWindow returns rows with any expiry date inside [start, end],
// ordered by insurance_expiry with NULLs last. Used by the monthly report.
func (s *Store) ListInWindow(ctx context.Context, start, end time.Time) ([]Item, error) {
	q := `
	SELECT ` + itemColumns + `
	FROM fleet_items
	WHERE (insurance_expiry BETWEEN ? AND ?)
	   OR (puspakom_expiry BETWEEN ? AND ?)
	   OR (permit_expiry BETWEEN ? AND ?)
	ORDER BY insurance_expiry IS NULL, insurance_expiry`
	lo, hi := start.Format(DateLayout), end.Format(DateLayout)
	return queryItems(ctx, s.db, q, lo, hi, lo, hi, lo, hi)
}

// Dashboard gathers grouped counts plus the flagged and full lists in one
// read-only transaction.
func (s *Store) Dashboard(ctx context.Context, ceiling time.Time) (byCompany, byCategory []CountRow, flagged, all []Item, err error) {
	err = db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if byCompany, err = countBy(ctx, tx, "company"); err != nil {
			return err
		}
		if byCategory, err = countBy(ctx, tx, "category"); err != nil {
			return err
		}
		if flagged, err = listFlagged(ctx, tx, ceiling, FlaggedLimit); err != nil {
			return err
		}
		all, err = listAll(ctx, tx, ListLimit)
		return err
	})
	return
}

// ===== shared query helpers (run against *sql.DB or a Tx) =====

func listAll(ctx context.Context, tx db.DBTX, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = ListLimit
	}
	q := `SELECT ` + itemColumns + ` FROM fleet_items ORDER BY company, type, code LIMIT ?`
	return queryItems(ctx, tx, q, limit)
}

func listFlagged(ctx context.Context, tx db.DBTX, ceiling time.Time, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = FlaggedLimit
	}
	q := `
	SELECT ` + itemColumns + `
	FROM fleet_items
	WHERE (insurance_expiry IS NOT NULL AND insurance_expiry <= ?)
	   OR (puspakom_expiry IS NOT NULL AND puspakom_expiry <= ?)
	   OR (permit_expiry IS NOT NULL AND permit_expiry <= ?)
	ORDER BY insurance_expiry IS NULL, insurance_expiry
	LIMIT ?`
	c := ceiling.Format(DateLayout)
	return queryItems(ctx, tx, q, c, c, c, limit)
}

// countBy groups on a fixed column name; never interpolate user input here.
func countBy(ctx context.Context, tx db.DBTX, column string) ([]CountRow, error) {
	q := `SELECT ` + column + `, COUNT(*) AS total FROM fleet_items GROUP BY ` + column + ` ORDER BY ` + column
	rows, err := tx.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CountRow{}
	for rows.Next() {
		var r CountRow
		if err := rows.Scan(&r.Value, &r.Total); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func queryItems(ctx context.Context, tx db.DBTX, q string, args ...any) ([]Item, error) {
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var r itemRow
		if err := scanItem(rows.Scan, &r); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func scanItem(scan func(dest ...any) error, r *itemRow) error {
	return scan(
		&r.ItemID, &r.Company, &r.Category, &r.Type, &r.Code, &r.Model, &r.PlateNo, &r.SerialNo,
		&r.CurrentLocation, &r.Driver, &r.PermitExpiry, &r.PuspakomExpiry, &r.InsuranceExpiry,
		&r.LoanDueDate, &r.LoanMonthlyAmount, &r.Status, &r.Remarks, &r.CreatedOn,
	)
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(DateLayout)
}
