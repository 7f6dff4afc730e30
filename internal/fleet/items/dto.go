package items

import "time"

const (
	DateLayout = "2006-01-02"

	CategoryVehicle   = "Vehicle"
	CategoryMachinery = "Machinery"

	// Dashboard list caps, matching the admin UI's table sizes.
	FlaggedLimit = 200
	ListLimit    = 500
)

// Fixed company set; create/update validate against it.
var Companies = []string{
	"LESTARY",
	"JH CINTA MATA",
	"PEMBANGUNAN KESAN ANEKA",
	"PASTI JUTANIAGA",
}

var Categories = []string{CategoryVehicle, CategoryMachinery}

// Suggested values for the type select. Free text is still accepted.
var TypeSuggestions = []string{
	"Car", "Lorry", "Motorbike", "Backhoe", "Excavator", "Cold Recycle Machine", "Compactor",
	"Shovel", "Dozer", "Hino", "Motor Grader", "Milling Machine", "HOWO Truck", "Kubota",
	"Paver", "Mixer", "Mobile Crusher",
}

// Create and edit share one shape: an edit replaces every field of the
// record, so there are no partial-update semantics here.
type ItemRequest struct {
	Company           string  `json:"company" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	Type              string  `json:"type"`
	Code              string  `json:"code" binding:"required"`
	Model             string  `json:"model"`
	PlateNo           string  `json:"plate_no"`
	SerialNo          string  `json:"serial_no"`
	CurrentLocation   string  `json:"current_location"`
	Driver            string  `json:"driver"`
	PermitExpiry      *string `json:"permit_expiry,omitempty"`    // YYYY-MM-DD
	PuspakomExpiry    *string `json:"puspakom_expiry,omitempty"`  // YYYY-MM-DD
	InsuranceExpiry   *string `json:"insurance_expiry,omitempty"` // YYYY-MM-DD
	LoanDueDate       *string `json:"loan_due_date,omitempty"`    // YYYY-MM-DD
	LoanMonthlyAmount *string `json:"loan_monthly_amount,omitempty"`
	Status            string  `json:"status"`
	Remarks           string  `json:"remarks"`
}

type ItemResponse struct {
	ItemID            uint64    `json:"item_id"`
	Company           string    `json:"company"`
	Category          string    `json:"category"`
	Type              string    `json:"type"`
	Code              string    `json:"code"`
	Model             string    `json:"model"`
	PlateNo           string    `json:"plate_no"`
	SerialNo          string    `json:"serial_no"`
	CurrentLocation   string    `json:"current_location"`
	Driver            string    `json:"driver"`
	PermitExpiry      *string   `json:"permit_expiry,omitempty"`
	PuspakomExpiry    *string   `json:"puspakom_expiry,omitempty"`
	InsuranceExpiry   *string   `json:"insurance_expiry,omitempty"`
	LoanDueDate       *string   `json:"loan_due_date,omitempty"`
	LoanMonthlyAmount *string   `json:"loan_monthly_amount,omitempty"`
	Status            string    `json:"status"`
	Remarks           string    `json:"remarks"`
	CreatedOn         time.Time `json:"created_on"`
	ExpiringSoon      bool      `json:"expiring_soon"`
}

type CountRow struct {
	Value string `json:"value"`
	Total int64  `json:"total"`
}

type DashboardResponse struct {
	ByCompany  []CountRow     `json:"by_company"`
	ByCategory []CountRow     `json:"by_category"`
	Flagged    []ItemResponse `json:"flagged"`
	Items      []ItemResponse `json:"items"`
}

type OptionsResponse struct {
	Companies  []string `json:"companies"`
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
}
