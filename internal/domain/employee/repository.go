package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no row matches.
	GetByID(ctx context.Context, id int) (*Employee, error)
	// SearchByName matches the pattern against first and last name, case-insensitively.
	SearchByName(ctx context.Context, pattern string) ([]*Employee, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context, filter EmployeeFilter) ([]*Employee, int64, error)
	ListIDs(ctx context.Context) ([]int, error)
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int) error
}
