package payroll

import (
	"context"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
)

// SalaryRecordFilter describes the query options for listing salary records
type SalaryRecordFilter struct {
	shared.Filter
	EmployeeID  *uuid.UUID
	PeriodYear  *int
	PeriodMonth *int
}

// Repository defines persistence for salary records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalaryRecord, error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (*SalaryRecord, error)
	FindAll(ctx context.Context, filter SalaryRecordFilter) ([]SalaryRecord, error)
	Count(ctx context.Context, filter SalaryRecordFilter) (int64, error)
	Save(ctx context.Context, record *SalaryRecord) error
	SaveWithLock(ctx context.Context, record *SalaryRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (bool, error)
}
