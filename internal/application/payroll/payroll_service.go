// Package payroll contains the application services for salary records.
package payroll

import (
	"context"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/staff"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Breakdown variants exposed by the API. The two payout formulas are
// kept separate on purpose; the business reads both sheets side by side.
const (
	VariantSingle = "single"
	VariantGlobal = "global"
)

// Service handles salary record operations
type Service struct {
	recordRepo     payroll.Repository
	employeeRepo   staff.Repository
	insuredMinimum decimal.Decimal
	logger         *zap.Logger
}

// NewService creates a payroll service. insuredMinimum is the gross
// amount the global sheet tops employees up to.
func NewService(recordRepo payroll.Repository, employeeRepo staff.Repository, insuredMinimum decimal.Decimal, logger *zap.Logger) *Service {
	return &Service{
		recordRepo:     recordRepo,
		employeeRepo:   employeeRepo,
		insuredMinimum: insuredMinimum,
		logger:         logger,
	}
}

// Create opens a salary record for an employee and period. The employee
// name and role are snapshotted onto the record so later staff edits do
// not rewrite past payrolls.
func (s *Service) Create(ctx context.Context, req CreateSalaryRecordRequest) (*SalaryRecordResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Invalid employee ID")
	}

	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.recordRepo.ExistsForPeriod(ctx, employeeID, req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A salary record already exists for this employee and period")
	}

	record, err := payroll.NewSalaryRecord(employeeID, employee.Name, employee.Role, req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return nil, err
	}
	if err := record.UpdateAmounts(req.SalesAmount, req.SAC, req.Advance, req.Receipt,
		req.Training, req.Vacation, req.Reception, req.Other, toExtraItems(req.Extras)); err != nil {
		return nil, err
	}

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("salary record created",
		zap.String("record_id", record.ID.String()),
		zap.String("employee", record.EmployeeName),
		zap.Int("year", record.PeriodYear),
		zap.Int("month", record.PeriodMonth),
	)

	resp := toSalaryRecordResponse(record)
	return &resp, nil
}

// Get returns one salary record
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SalaryRecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSalaryRecordResponse(record)
	return &resp, nil
}

// Update replaces the entered amounts on a record
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateSalaryRecordRequest) (*SalaryRecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := record.UpdateAmounts(req.SalesAmount, req.SAC, req.Advance, req.Receipt,
		req.Training, req.Vacation, req.Reception, req.Other, toExtraItems(req.Extras)); err != nil {
		return nil, err
	}

	if err := s.recordRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	resp := toSalaryRecordResponse(record)
	return &resp, nil
}

// Delete removes a salary record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.recordRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.recordRepo.Delete(ctx, id)
}

// List returns salary records matching the filter
func (s *Service) List(ctx context.Context, req ListSalaryRecordsRequest) ([]SalaryRecordResponse, int64, error) {
	filter := payroll.SalaryRecordFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
	}
	if req.EmployeeID != "" {
		employeeID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_EMPLOYEE", "Invalid employee ID")
		}
		filter.EmployeeID = &employeeID
	}
	if req.PeriodYear != 0 {
		filter.PeriodYear = &req.PeriodYear
	}
	if req.PeriodMonth != 0 {
		filter.PeriodMonth = &req.PeriodMonth
	}

	records, err := s.recordRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.recordRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SalaryRecordResponse, len(records))
	for i := range records {
		responses[i] = toSalaryRecordResponse(&records[i])
	}
	return responses, total, nil
}

// ComputeSingle computes the per-employee payout sheet for a record
func (s *Service) ComputeSingle(ctx context.Context, id uuid.UUID) (*SalaryComputationResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SalaryComputationResponse{
		Record:    toSalaryRecordResponse(record),
		Breakdown: toBreakdownResponse(VariantSingle, record.ComputeSalarySingle()),
	}, nil
}

// ComputeGlobal computes the whole-salon sheet row for a record,
// including the insured top-up.
func (s *Service) ComputeGlobal(ctx context.Context, id uuid.UUID) (*SalaryComputationResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SalaryComputationResponse{
		Record:    toSalaryRecordResponse(record),
		Breakdown: toBreakdownResponse(VariantGlobal, record.ComputeSalaryGlobal(s.insuredMinimum)),
	}, nil
}

// GlobalSheet computes the whole-salon monthly sheet: one global-variant
// row per salary record of the period, plus cash and top-up totals.
func (s *Service) GlobalSheet(ctx context.Context, year, month int) (*GlobalSheetResponse, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is out of range")
	}

	filter := payroll.SalaryRecordFilter{
		Filter:      shared.Filter{Page: 1, PageSize: 200, OrderBy: "employee_name", OrderDir: "asc"},
		PeriodYear:  &year,
		PeriodMonth: &month,
	}
	records, err := s.recordRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	sheet := &GlobalSheetResponse{
		PeriodYear:     year,
		PeriodMonth:    month,
		InsuredMinimum: s.insuredMinimum,
		Rows:           make([]GlobalSheetRowResponse, 0, len(records)),
		TotalCash:      decimal.Zero,
		TotalTopUp:     decimal.Zero,
	}
	for i := range records {
		breakdown := records[i].ComputeSalaryGlobal(s.insuredMinimum)
		sheet.Rows = append(sheet.Rows, GlobalSheetRowResponse{
			Record:    toSalaryRecordResponse(&records[i]),
			Breakdown: toBreakdownResponse(VariantGlobal, breakdown),
		})
		sheet.TotalCash = sheet.TotalCash.Add(breakdown.CashTotal)
		sheet.TotalTopUp = sheet.TotalTopUp.Add(breakdown.InsuredTopUp)
	}
	return sheet, nil
}
