package staff

import (
	"strings"
	"time"

	"github.com/salon/backend/internal/domain/shared"
)

// Employee is a member of the salon staff. Role is a free-form label
// ("peluquera", "manicurista", ...) and drives the payroll commission
// rate, so renaming a role changes future salary computations.
type Employee struct {
	shared.BaseAggregateRoot
	Name     string
	Role     string
	Email    string
	Phone    string
	HireDate time.Time
	Active   bool
}

// NewEmployee creates an active employee
func NewEmployee(name, role, email, phone string, hireDate time.Time) (*Employee, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Employee name is required")
	}
	if strings.TrimSpace(role) == "" {
		return nil, shared.NewDomainError("INVALID_ROLE", "Employee role is required")
	}
	if hireDate.IsZero() {
		hireDate = time.Now()
	}
	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Role:              role,
		Email:             strings.TrimSpace(email),
		Phone:             strings.TrimSpace(phone),
		HireDate:          hireDate,
		Active:            true,
	}, nil
}

// Update replaces the employee's editable details
func (e *Employee) Update(name, role, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Employee name is required")
	}
	if strings.TrimSpace(role) == "" {
		return shared.NewDomainError("INVALID_ROLE", "Employee role is required")
	}
	e.Name = name
	e.Role = role
	e.Email = strings.TrimSpace(email)
	e.Phone = strings.TrimSpace(phone)
	e.Touch()
	return nil
}

// Deactivate marks the employee as no longer working at the salon.
// Used instead of deletion once the employee has salary history.
func (e *Employee) Deactivate() error {
	if !e.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Employee is already inactive")
	}
	e.Active = false
	e.Touch()
	return nil
}

// Reactivate marks the employee as working again
func (e *Employee) Reactivate() error {
	if e.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Employee is already active")
	}
	e.Active = true
	e.Touch()
	return nil
}
