package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, username, full_name, hashed_password, pin, is_admin,
	salary_type, fixed_salary, hourly_rate, is_active, display_order,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Username, &emp.FullName, &emp.HashedPassword, &emp.PIN, &emp.IsAdmin,
		&emp.SalaryType, &emp.FixedSalary, &emp.HourlyRate, &emp.IsActive, &emp.DisplayOrder,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}

	query := `
		INSERT INTO employees (
			id, username, full_name, hashed_password, pin, is_admin,
			salary_type, fixed_salary, hourly_rate, is_active, display_order
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.Username,
		emp.FullName,
		emp.HashedPassword,
		emp.PIN,
		emp.IsAdmin,
		emp.SalaryType,
		emp.FixedSalary,
		emp.HourlyRate,
		emp.IsActive,
		emp.DisplayOrder,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByUsername implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `FROM employees WHERE username = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by username: %w", err)
	}

	return emp, nil
}

// GetActiveByPIN implements employee.EmployeeRepository.
func (r *employeeRepository) GetActiveByPIN(ctx context.Context, pin string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `FROM employees WHERE pin = $1 AND is_active = true`

	emp, err := scanEmployee(q.QueryRow(ctx, query, pin))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by pin: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `FROM employees`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY display_order, full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			full_name = $2,
			hashed_password = $3,
			pin = $4,
			salary_type = $5,
			fixed_salary = $6,
			hourly_rate = $7,
			is_active = $8,
			display_order = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID,
		emp.FullName,
		emp.HashedPassword,
		emp.PIN,
		emp.SalaryType,
		emp.FixedSalary,
		emp.HourlyRate,
		emp.IsActive,
		emp.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// PINInUse implements employee.EmployeeRepository.
func (r *employeeRepository) PINInUse(ctx context.Context, pin string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE pin = $1 AND is_active = true AND id <> $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, pin, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pin: %w", err)
	}

	return exists, nil
}
