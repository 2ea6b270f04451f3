package ledger

import (
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEntryRequest struct {
	Kind       string          `json:"kind"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedBy  *string         `json:"-"`
}

func (r CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Kind(r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be penalty, bonus or advance"})
	}
	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee id"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEntryRequest struct {
	ID     string           `json:"-"`
	Date   *string          `json:"date,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Notes  *string          `json:"notes,omitempty"`
}

func (r UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid entry id"})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryFilter struct {
	Kind       *Kind
	EmployeeID *string
	StartDate  time.Time
	EndDate    time.Time
}

type EntryResponse struct {
	ID            string          `json:"id"`
	Kind          Kind            `json:"kind"`
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         *string         `json:"notes,omitempty"`
	AutoGenerated bool            `json:"auto_generated"`
	AutoReason    *AutoReason     `json:"auto_reason,omitempty"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		Kind:          e.Kind,
		EmployeeID:    e.EmployeeID,
		Date:          e.Date.Format("2006-01-02"),
		Amount:        e.Amount,
		Notes:         e.Notes,
		AutoGenerated: e.AutoGenerated,
		AutoReason:    e.AutoReason,
	}
}

type CreateDebtRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       *string         `json:"note,omitempty"`
}

func (r CreateDebtRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee id"})
	}
	if r.Amount.IsNegative() || r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DebtResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	IsPaid     bool            `json:"is_paid"`
	PaidDate   *time.Time      `json:"paid_date,omitempty"`
	Note       *string         `json:"note,omitempty"`
}

func ToDebtResponse(d Debt) DebtResponse {
	return DebtResponse{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		Amount:     d.Amount,
		IsPaid:     d.IsPaid,
		PaidDate:   d.PaidDate,
		Note:       d.Note,
	}
}
