package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
)

// EmployeeFilter describes query options for listing employees
type EmployeeFilter struct {
	shared.Filter
	Role   *string
	Active *bool
}

// Repository defines persistence for employees
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Count(ctx context.Context, filter EmployeeFilter) (int64, error)
	Save(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasSalaryRecords(ctx context.Context, id uuid.UUID) (bool, error)
}
