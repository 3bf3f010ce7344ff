package staff

import (
	"time"

	"github.com/salon/backend/internal/domain/staff"
)

// CreateEmployeeRequest is the input for adding an employee
type CreateEmployeeRequest struct {
	Name     string     `json:"name" binding:"required"`
	Role     string     `json:"role" binding:"required"`
	Email    string     `json:"email" binding:"omitempty,email"`
	Phone    string     `json:"phone"`
	HireDate *time.Time `json:"hire_date"`
}

// UpdateEmployeeRequest is the input for editing an employee
type UpdateEmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// ListEmployeesRequest is the input for listing employees
type ListEmployeesRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Role     string `form:"role"`
	Active   *bool  `form:"active"`
}

// EmployeeResponse is the API shape of an employee
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	HireDate  time.Time `json:"hire_date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toEmployeeResponse(employee *staff.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        employee.ID.String(),
		Name:      employee.Name,
		Role:      employee.Role,
		Email:     employee.Email,
		Phone:     employee.Phone,
		HireDate:  employee.HireDate,
		Active:    employee.Active,
		CreatedAt: employee.CreatedAt,
		UpdatedAt: employee.UpdatedAt,
	}
}
