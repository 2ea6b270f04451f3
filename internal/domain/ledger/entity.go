package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindPenalty Kind = "penalty"
	KindBonus   Kind = "bonus"
	KindAdvance Kind = "advance"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPenalty, KindBonus, KindAdvance:
		return true
	}
	return false
}

// AutoReason marks why a penalty was auto-generated. Together with the
// employee and date it forms the dedup key for the generator.
type AutoReason string

const (
	ReasonAbsent        AutoReason = "absent"
	ReasonLate          AutoReason = "late"
	ReasonEarlyCheckout AutoReason = "early_checkout"
)

// Entry is a dated money line against an employee: a penalty, bonus or
// salary advance. Amounts are always non-negative; the kind decides the
// sign at aggregation time.
type Entry struct {
	ID            string
	Kind          Kind
	EmployeeID    string
	Date          time.Time
	Amount        decimal.Decimal
	Notes         *string
	AutoGenerated bool
	AutoReason    *AutoReason
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Debt is money owed by an employee, settled outside payroll but deducted
// from net pay while unpaid.
type Debt struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	IsPaid     bool
	PaidDate   *time.Time
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
