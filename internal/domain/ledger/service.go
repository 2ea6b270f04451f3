package ledger

import (
	"context"
	"time"
)

// LedgerService defines business logic for money entries and debts
type LedgerService interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)

	ListEntries(ctx context.Context, filter EntryFilter) ([]EntryResponse, error)

	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)

	DeleteEntry(ctx context.Context, id string) error

	CreateDebt(ctx context.Context, req CreateDebtRequest) (DebtResponse, error)

	ListDebts(ctx context.Context, employeeID *string, unpaidOnly bool) ([]DebtResponse, error)

	// MarkDebtPaid settles a debt as of the given date.
	MarkDebtPaid(ctx context.Context, id string, paidDate time.Time) (DebtResponse, error)

	DeleteDebt(ctx context.Context, id string) error
}
