package employee

import "context"

// EmployeeService defines business logic for employee management
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	Get(ctx context.Context, id string) (EmployeeResponse, error)

	List(ctx context.Context, includeInactive bool) ([]EmployeeResponse, error)

	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Deactivate marks the employee inactive, freeing the PIN for reuse.
	Deactivate(ctx context.Context, id string) error
}
