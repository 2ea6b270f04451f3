package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/ledger"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type entryRepository struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) ledger.EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `
	id, kind, employee_id, date, amount, notes, auto_generated, auto_reason,
	created_by, created_at, updated_at`

func scanEntry(row pgx.Row) (ledger.Entry, error) {
	var e ledger.Entry
	err := row.Scan(
		&e.ID, &e.Kind, &e.EmployeeID, &e.Date, &e.Amount, &e.Notes, &e.AutoGenerated, &e.AutoReason,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements ledger.EntryRepository.
func (r *entryRepository) Create(ctx context.Context, entry ledger.Entry) (ledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO ledger_entries (id, kind, employee_id, date, amount, notes, auto_generated, auto_reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.Kind,
		entry.EmployeeID,
		entry.Date,
		entry.Amount,
		entry.Notes,
		entry.AutoGenerated,
		entry.AutoReason,
		entry.CreatedBy,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return ledger.Entry{}, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return entry, nil
}

// CreateAutoIfAbsent implements ledger.EntryRepository. The partial unique
// index on (employee_id, date, auto_reason) for auto-generated rows makes
// the insert race-safe; ON CONFLICT DO NOTHING swallows duplicates.
func (r *entryRepository) CreateAutoIfAbsent(ctx context.Context, entry ledger.Entry) (bool, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO ledger_entries (id, kind, employee_id, date, amount, notes, auto_generated, auto_reason)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7)
		ON CONFLICT (employee_id, date, auto_reason) WHERE auto_generated DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		entry.ID,
		entry.Kind,
		entry.EmployeeID,
		entry.Date,
		entry.Amount,
		entry.Notes,
		entry.AutoReason,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create auto penalty: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// GetByID implements ledger.EntryRepository.
func (r *entryRepository) GetByID(ctx context.Context, id string) (ledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + entryColumns + ` FROM ledger_entries WHERE id = $1`

	e, err := scanEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Entry{}, ledger.ErrEntryNotFound
		}
		return ledger.Entry{}, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return e, nil
}

// List implements ledger.EntryRepository.
func (r *entryRepository) List(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + entryColumns + ` FROM ledger_entries WHERE date BETWEEN $1 AND $2`
	args := []interface{}{filter.StartDate, filter.EndDate}
	argIdx := 3

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Update implements ledger.EntryRepository.
func (r *entryRepository) Update(ctx context.Context, entry ledger.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ledger_entries SET
			date = $2,
			amount = $3,
			notes = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, entry.ID, entry.Date, entry.Amount, entry.Notes)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound
	}

	return nil
}

// Delete implements ledger.EntryRepository.
func (r *entryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound
	}

	return nil
}

// SumByKind implements ledger.EntryRepository.
func (r *entryRepository) SumByKind(ctx context.Context, employeeID string, kind ledger.Kind, start, end time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE employee_id = $1 AND kind = $2 AND date BETWEEN $3 AND $4
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, kind, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger entries: %w", err)
	}

	return sum, nil
}

type debtRepository struct {
	db *database.DB
}

func NewDebtRepository(db *database.DB) ledger.DebtRepository {
	return &debtRepository{db: db}
}

const debtColumns = `
	id, employee_id, amount, is_paid, paid_date, note, created_at, updated_at`

func scanDebt(row pgx.Row) (ledger.Debt, error) {
	var d ledger.Debt
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.Amount, &d.IsPaid, &d.PaidDate, &d.Note, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// Create implements ledger.DebtRepository.
func (r *debtRepository) Create(ctx context.Context, debt ledger.Debt) (ledger.Debt, error) {
	q := GetQuerier(ctx, r.db)

	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}

	query := `
		INSERT INTO debts (id, employee_id, amount, is_paid, paid_date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		debt.ID,
		debt.EmployeeID,
		debt.Amount,
		debt.IsPaid,
		debt.PaidDate,
		debt.Note,
	).Scan(&debt.CreatedAt, &debt.UpdatedAt)

	if err != nil {
		return ledger.Debt{}, fmt.Errorf("failed to create debt: %w", err)
	}

	return debt, nil
}

// GetByID implements ledger.DebtRepository.
func (r *debtRepository) GetByID(ctx context.Context, id string) (ledger.Debt, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + debtColumns + ` FROM debts WHERE id = $1`

	d, err := scanDebt(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Debt{}, ledger.ErrDebtNotFound
		}
		return ledger.Debt{}, fmt.Errorf("failed to get debt: %w", err)
	}

	return d, nil
}

// List implements ledger.DebtRepository.
func (r *debtRepository) List(ctx context.Context, employeeID *string, unpaidOnly bool) ([]ledger.Debt, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + debtColumns + ` FROM debts WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if employeeID != nil {
		query += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if unpaidOnly {
		query += " AND is_paid = false"
	}

	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []ledger.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}

	return debts, rows.Err()
}

// Update implements ledger.DebtRepository.
func (r *debtRepository) Update(ctx context.Context, debt ledger.Debt) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE debts SET
			amount = $2,
			is_paid = $3,
			paid_date = $4,
			note = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, debt.ID, debt.Amount, debt.IsPaid, debt.PaidDate, debt.Note)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrDebtNotFound
	}

	return nil
}

// Delete implements ledger.DebtRepository.
func (r *debtRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrDebtNotFound
	}

	return nil
}

// SumUnpaid implements ledger.DebtRepository.
func (r *debtRepository) SumUnpaid(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM debts
		WHERE employee_id = $1 AND is_paid = false
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum unpaid debts: %w", err)
	}

	return sum, nil
}
