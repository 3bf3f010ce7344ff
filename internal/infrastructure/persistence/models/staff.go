package models

import (
	"time"

	"github.com/salon/backend/internal/domain/staff"
)

// EmployeeModel is the persistence model for the Employee domain entity.
type EmployeeModel struct {
	AggregateModel
	Name     string    `gorm:"type:varchar(200);not null;index"`
	Role     string    `gorm:"type:varchar(100);not null;index"`
	Email    string    `gorm:"type:varchar(200)"`
	Phone    string    `gorm:"type:varchar(50)"`
	HireDate time.Time `gorm:"not null"`
	Active   bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee entity.
func (m *EmployeeModel) ToDomain() *staff.Employee {
	employee := &staff.Employee{
		Name:     m.Name,
		Role:     m.Role,
		Email:    m.Email,
		Phone:    m.Phone,
		HireDate: m.HireDate,
		Active:   m.Active,
	}
	m.PopulateAggregateRoot(&employee.BaseAggregateRoot)
	return employee
}

// FromDomain populates the persistence model from a domain Employee entity.
func (m *EmployeeModel) FromDomain(e *staff.Employee) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Name = e.Name
	m.Role = e.Role
	m.Email = e.Email
	m.Phone = e.Phone
	m.HireDate = e.HireDate
	m.Active = e.Active
}

// EmployeeModelFromDomain creates a new persistence model from a domain entity.
func EmployeeModelFromDomain(e *staff.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}
