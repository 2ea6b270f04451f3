package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	GetByUsername(ctx context.Context, username string) (Employee, error)

	// GetActiveByPIN resolves the kiosk PIN to an active employee.
	GetActiveByPIN(ctx context.Context, pin string) (Employee, error)

	// List returns employees ordered by display_order then full_name.
	List(ctx context.Context, includeInactive bool) ([]Employee, error)

	Update(ctx context.Context, emp Employee) error

	// PINInUse reports whether another active employee already holds the PIN.
	PINInUse(ctx context.Context, pin string, excludeID string) (bool, error)
}
