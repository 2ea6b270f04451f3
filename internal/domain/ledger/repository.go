package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EntryRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)

	// CreateAutoIfAbsent inserts an auto-generated penalty unless one with
	// the same (employee, date, auto_reason) already exists. Returns
	// whether a row was actually inserted.
	CreateAutoIfAbsent(ctx context.Context, entry Entry) (bool, error)

	GetByID(ctx context.Context, id string) (Entry, error)

	List(ctx context.Context, filter EntryFilter) ([]Entry, error)

	Update(ctx context.Context, entry Entry) error

	Delete(ctx context.Context, id string) error

	// SumByKind totals one employee's entries of a kind with date in [start, end].
	SumByKind(ctx context.Context, employeeID string, kind Kind, start, end time.Time) (decimal.Decimal, error)
}

type DebtRepository interface {
	Create(ctx context.Context, debt Debt) (Debt, error)

	GetByID(ctx context.Context, id string) (Debt, error)

	List(ctx context.Context, employeeID *string, unpaidOnly bool) ([]Debt, error)

	Update(ctx context.Context, debt Debt) error

	Delete(ctx context.Context, id string) error

	// SumUnpaid totals the employee's outstanding debt.
	SumUnpaid(ctx context.Context, employeeID string) (decimal.Decimal, error)
}
