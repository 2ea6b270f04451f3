package employee

import (
	"context"
	"fmt"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.PIN != nil {
		taken, err := s.employeeRepo.PINInUse(ctx, *req.PIN, "")
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check pin: %w", err)
		}
		if taken {
			return employee.EmployeeResponse{}, employee.ErrPINTaken
		}
	}

	emp := employee.Employee{
		Username:     req.Username,
		FullName:     req.FullName,
		PIN:          req.PIN,
		IsAdmin:      req.IsAdmin,
		SalaryType:   employee.SalaryType(req.SalaryType),
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
	}

	// Validated upstream, so these cannot fail.
	emp.FixedSalary, _ = decimal.NewFromString(orZeroAmount(req.FixedSalary))
	emp.HourlyRate, _ = decimal.NewFromString(orZeroAmount(req.HourlyRate))

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashedStr := string(hashed)
		emp.HashedPassword = &hashedStr
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, includeInactive bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.PIN != nil {
		taken, err := s.employeeRepo.PINInUse(ctx, *req.PIN, emp.ID)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check pin: %w", err)
		}
		if taken {
			return employee.EmployeeResponse{}, employee.ErrPINTaken
		}
		emp.PIN = req.PIN
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashedStr := string(hashed)
		emp.HashedPassword = &hashedStr
	}
	if req.SalaryType != nil {
		emp.SalaryType = employee.SalaryType(*req.SalaryType)
	}
	if req.FixedSalary != nil {
		emp.FixedSalary, _ = decimal.NewFromString(*req.FixedSalary)
	}
	if req.HourlyRate != nil {
		emp.HourlyRate, _ = decimal.NewFromString(*req.HourlyRate)
	}
	if req.DisplayOrder != nil {
		emp.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.ToResponse(emp), nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	emp.IsActive = false
	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	return nil
}

func orZeroAmount(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
