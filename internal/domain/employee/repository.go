package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no employee has the id.
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByCode returns ErrEmployeeNotFound when no employee has the code.
	GetByCode(ctx context.Context, code string) (Employee, error)
	// Create returns ErrEmployeeCodeExists when the code is taken.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) error
	ListActive(ctx context.Context) ([]Employee, error)
}
