package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{store: NewStore(conn)} }

func (s *Service) Store() *Store { return s.store }

func (s *Service) CreateItem(ctx context.Context, in ItemRequest) (ItemResponse, error) {
	it, err := fromRequest(in)
	if err != nil {
		return ItemResponse{}, err
	}
	id, err := s.store.Insert(ctx, it)
	if err != nil {
		return ItemResponse{}, err
	}
	out, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ItemResponse{}, err
	}
	return out.toDTO(time.Now()), nil
}

func (s *Service) GetItem(ctx context.Context, id uint64) (ItemResponse, error) {
	out, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return ItemResponse{}, ErrNotFound("item not found")
		}
		return ItemResponse{}, err
	}
	return out.toDTO(time.Now()), nil
}

// UpdateItem is a full replacement: the form posts every field back.
func (s *Service) UpdateItem(ctx context.Context, id uint64, in ItemRequest) (ItemResponse, error) {
	it, err := fromRequest(in)
	if err != nil {
		return ItemResponse{}, err
	}
	if err := s.store.Update(ctx, id, it); err != nil {
		if err == sql.ErrNoRows {
			return ItemResponse{}, ErrNotFound("item not found")
		}
		return ItemResponse{}, err
	}
	out, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ItemResponse{}, err
	}
	return out.toDTO(time.Now()), nil
}

func (s *Service) DeleteItem(ctx context.Context, id uint64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound("item not found")
		}
		return err
	}
	return nil
}

func (s *Service) ListItems(ctx context.Context, limit int) ([]ItemResponse, error) {
	list, err := s.store.ListAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toDTOs(list, time.Now()), nil
}

func (s *Service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	today := DateOnly(time.Now())
	ceiling := today.AddDate(0, 0, ExpiryHorizonDays)
	byCompany, byCategory, flagged, all, err := s.store.Dashboard(ctx, ceiling)
	if err != nil {
		return DashboardResponse{}, err
	}
	return DashboardResponse{
		ByCompany:  byCompany,
		ByCategory: byCategory,
		Flagged:    toDTOs(flagged, today),
		Items:      toDTOs(all, today),
	}, nil
}

// ExportAll returns every record for the CSV download, same ordering as the
// dashboard's full table, no limit.
func (s *Service) ExportAll(ctx context.Context) ([]Item, error) {
	return s.store.ListAll(ctx, 1<<30)
}

func (s *Service) Options() OptionsResponse {
	return OptionsResponse{Companies: Companies, Categories: Categories, Types: TypeSuggestions}
}

// ===== validation / mapping =====

func fromRequest(in ItemRequest) (Item, error) {
	if !contains(Companies, in.Company) {
		return Item{}, ErrInvalid("company must be one of the registered companies")
	}
	if in.Category != CategoryVehicle && in.Category != CategoryMachinery {
		return Item{}, ErrInvalid("category must be Vehicle or Machinery")
	}
	if strings.TrimSpace(in.Code) == "" {
		return Item{}, ErrInvalid("code is required")
	}

	it := Item{
		Company:         in.Company,
		Category:        in.Category,
		Type:            in.Type,
		Code:            strings.TrimSpace(in.Code),
		Model:           in.Model,
		PlateNo:         in.PlateNo,
		SerialNo:        in.SerialNo,
		CurrentLocation: in.CurrentLocation,
		Driver:          in.Driver,
		Status:          in.Status,
		Remarks:         in.Remarks,
	}

	var err error
	if it.PermitExpiry, err = parseDatePtr(in.PermitExpiry, "permit_expiry"); err != nil {
		return Item{}, err
	}
	if it.PuspakomExpiry, err = parseDatePtr(in.PuspakomExpiry, "puspakom_expiry"); err != nil {
		return Item{}, err
	}
	if it.InsuranceExpiry, err = parseDatePtr(in.InsuranceExpiry, "insurance_expiry"); err != nil {
		return Item{}, err
	}
	if it.LoanDueDate, err = parseDatePtr(in.LoanDueDate, "loan_due_date"); err != nil {
		return Item{}, err
	}

	if in.LoanMonthlyAmount != nil && strings.TrimSpace(*in.LoanMonthlyAmount) != "" {
		amt, err := decimal.NewFromString(strings.TrimSpace(*in.LoanMonthlyAmount))
		if err != nil {
			return Item{}, ErrInvalid("loan_monthly_amount must be a decimal number")
		}
		if amt.IsNegative() {
			return Item{}, ErrInvalid("loan_monthly_amount must be >= 0")
		}
		it.LoanMonthlyAmount = decimal.NullDecimal{Decimal: amt, Valid: true}
	}

	return it, nil
}

func parseDatePtr(s *string, field string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(*s), time.Local)
	if err != nil {
		return nil, ErrInvalid(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}

func toDTOs(list []Item, today time.Time) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].toDTO(today))
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
