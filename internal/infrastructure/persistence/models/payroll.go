package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// SalaryRecordModel is the persistence model for the SalaryRecord domain entity.
type SalaryRecordModel struct {
	AggregateModel
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_salary_employee_period,priority:1"`
	EmployeeName string          `gorm:"type:varchar(200);not null"`
	Role         string          `gorm:"type:varchar(100);not null"`
	PeriodYear   int             `gorm:"not null;uniqueIndex:idx_salary_employee_period,priority:2"`
	PeriodMonth  int             `gorm:"not null;uniqueIndex:idx_salary_employee_period,priority:3"`
	SalesAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SAC          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Advance      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Receipt      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Training     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Vacation     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reception    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Other        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Extras       string          `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (SalaryRecordModel) TableName() string {
	return "salary_records"
}

// ToDomain converts the persistence model to a domain SalaryRecord entity.
func (m *SalaryRecordModel) ToDomain() *payroll.SalaryRecord {
	record := &payroll.SalaryRecord{
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		Role:         m.Role,
		PeriodYear:   m.PeriodYear,
		PeriodMonth:  m.PeriodMonth,
		SalesAmount:  m.SalesAmount,
		SAC:          m.SAC,
		Advance:      m.Advance,
		Receipt:      m.Receipt,
		Training:     m.Training,
		Vacation:     m.Vacation,
		Reception:    m.Reception,
		Other:        m.Other,
	}
	m.PopulateAggregateRoot(&record.BaseAggregateRoot)

	var extras []payroll.ExtraItem
	if m.Extras != "" {
		// Rows written before extras existed hold NULL-ish payloads;
		// treat anything unparsable as no extras.
		if err := json.Unmarshal([]byte(m.Extras), &extras); err != nil {
			extras = nil
		}
	}
	record.Extras = extras
	return record
}

// FromDomain populates the persistence model from a domain SalaryRecord entity.
func (m *SalaryRecordModel) FromDomain(r *payroll.SalaryRecord) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.EmployeeID = r.EmployeeID
	m.EmployeeName = r.EmployeeName
	m.Role = r.Role
	m.PeriodYear = r.PeriodYear
	m.PeriodMonth = r.PeriodMonth
	m.SalesAmount = r.SalesAmount
	m.SAC = r.SAC
	m.Advance = r.Advance
	m.Receipt = r.Receipt
	m.Training = r.Training
	m.Vacation = r.Vacation
	m.Reception = r.Reception
	m.Other = r.Other

	extras := r.Extras
	if extras == nil {
		extras = []payroll.ExtraItem{}
	}
	data, err := json.Marshal(extras)
	if err != nil {
		data = []byte("[]")
	}
	m.Extras = string(data)
}

// SalaryRecordModelFromDomain creates a new persistence model from a domain entity.
func SalaryRecordModelFromDomain(r *payroll.SalaryRecord) *SalaryRecordModel {
	m := &SalaryRecordModel{}
	m.FromDomain(r)
	return m
}
