package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/ledger"
)

type LedgerServiceImpl struct {
	entryRepo    ledger.EntryRepository
	debtRepo     ledger.DebtRepository
	employeeRepo employee.EmployeeRepository
}

func NewLedgerService(
	entryRepo ledger.EntryRepository,
	debtRepo ledger.DebtRepository,
	employeeRepo employee.EmployeeRepository,
) ledger.LedgerService {
	return &LedgerServiceImpl{
		entryRepo:    entryRepo,
		debtRepo:     debtRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateEntry implements ledger.LedgerService.
func (s *LedgerServiceImpl) CreateEntry(ctx context.Context, req ledger.CreateEntryRequest) (ledger.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.EntryResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return ledger.EntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	entry, err := s.entryRepo.Create(ctx, ledger.Entry{
		Kind:       ledger.Kind(req.Kind),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Amount:     req.Amount,
		Notes:      req.Notes,
		CreatedBy:  req.CreatedBy,
	})
	if err != nil {
		return ledger.EntryResponse{}, fmt.Errorf("failed to create entry: %w", err)
	}

	return ledger.ToEntryResponse(entry), nil
}

// ListEntries implements ledger.LedgerService.
func (s *LedgerServiceImpl) ListEntries(ctx context.Context, filter ledger.EntryFilter) ([]ledger.EntryResponse, error) {
	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	responses := make([]ledger.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, ledger.ToEntryResponse(e))
	}

	return responses, nil
}

// UpdateEntry implements ledger.LedgerService.
func (s *LedgerServiceImpl) UpdateEntry(ctx context.Context, req ledger.UpdateEntryRequest) (ledger.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.EntryResponse{}, err
	}

	entry, err := s.entryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return ledger.EntryResponse{}, err
	}

	if req.Date != nil {
		entry.Date, _ = time.Parse("2006-01-02", *req.Date)
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return ledger.EntryResponse{}, fmt.Errorf("failed to update entry: %w", err)
	}

	return ledger.ToEntryResponse(entry), nil
}

// DeleteEntry implements ledger.LedgerService.
func (s *LedgerServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	return s.entryRepo.Delete(ctx, id)
}

// CreateDebt implements ledger.LedgerService.
func (s *LedgerServiceImpl) CreateDebt(ctx context.Context, req ledger.CreateDebtRequest) (ledger.DebtResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.DebtResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return ledger.DebtResponse{}, err
	}

	debt, err := s.debtRepo.Create(ctx, ledger.Debt{
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		return ledger.DebtResponse{}, fmt.Errorf("failed to create debt: %w", err)
	}

	return ledger.ToDebtResponse(debt), nil
}

// ListDebts implements ledger.LedgerService.
func (s *LedgerServiceImpl) ListDebts(ctx context.Context, employeeID *string, unpaidOnly bool) ([]ledger.DebtResponse, error) {
	debts, err := s.debtRepo.List(ctx, employeeID, unpaidOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	responses := make([]ledger.DebtResponse, 0, len(debts))
	for _, d := range debts {
		responses = append(responses, ledger.ToDebtResponse(d))
	}

	return responses, nil
}

// MarkDebtPaid implements ledger.LedgerService.
func (s *LedgerServiceImpl) MarkDebtPaid(ctx context.Context, id string, paidDate time.Time) (ledger.DebtResponse, error) {
	debt, err := s.debtRepo.GetByID(ctx, id)
	if err != nil {
		return ledger.DebtResponse{}, err
	}

	debt.IsPaid = true
	debt.PaidDate = &paidDate

	if err := s.debtRepo.Update(ctx, debt); err != nil {
		return ledger.DebtResponse{}, fmt.Errorf("failed to mark debt paid: %w", err)
	}

	return ledger.ToDebtResponse(debt), nil
}

// DeleteDebt implements ledger.LedgerService.
func (s *LedgerServiceImpl) DeleteDebt(ctx context.Context, id string) error {
	return s.debtRepo.Delete(ctx, id)
}
