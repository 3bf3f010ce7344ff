// Package staff contains the application services for salon employees.
package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/staff"
	"go.uber.org/zap"
)

// Service handles employee operations
type Service struct {
	employeeRepo staff.Repository
	logger       *zap.Logger
}

// NewService creates a staff service
func NewService(employeeRepo staff.Repository, logger *zap.Logger) *Service {
	return &Service{employeeRepo: employeeRepo, logger: logger}
}

// Create adds an employee
func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	hireDate := time.Time{}
	if req.HireDate != nil {
		hireDate = *req.HireDate
	}
	employee, err := staff.NewEmployee(req.Name, req.Role, req.Email, req.Phone, hireDate)
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("role", employee.Role),
	)

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Get returns one employee
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Update edits an employee. Renaming the role changes the commission
// rate of future salary records only; existing records keep their
// snapshotted role.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.Update(req.Name, req.Role, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Deactivate marks an employee as no longer working at the salon
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Reactivate marks an employee as working again
func (s *Service) Reactivate(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.Reactivate(); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Delete removes an employee. Employees with salary history cannot be
// deleted; deactivate them instead so past payrolls keep their subject.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	hasRecords, err := s.employeeRepo.HasSalaryRecords(ctx, id)
	if err != nil {
		return err
	}
	if hasRecords {
		return shared.NewDomainError("HAS_SALARY_RECORDS",
			"Employee has salary history and cannot be deleted; deactivate instead")
	}
	return s.employeeRepo.Delete(ctx, id)
}

// List returns employees matching the filter
func (s *Service) List(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, int64, error) {
	filter := staff.EmployeeFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
		Active: req.Active,
	}
	if req.Role != "" {
		filter.Role = &req.Role
	}

	employees, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = toEmployeeResponse(&employees[i])
	}
	return responses, total, nil
}
