package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSalaryRecordRepository is a mock implementation of payroll.Repository
type MockSalaryRecordRepository struct {
	mock.Mock
}

func (m *MockSalaryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.SalaryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRecordRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (*payroll.SalaryRecord, error) {
	args := m.Called(ctx, employeeID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRecordRepository) FindAll(ctx context.Context, filter payroll.SalaryRecordFilter) ([]payroll.SalaryRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payroll.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRecordRepository) Count(ctx context.Context, filter payroll.SalaryRecordFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalaryRecordRepository) Save(ctx context.Context, record *payroll.SalaryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSalaryRecordRepository) SaveWithLock(ctx context.Context, record *payroll.SalaryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSalaryRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalaryRecordRepository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (bool, error) {
	args := m.Called(ctx, employeeID, year, month)
	return args.Get(0).(bool), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of staff.Repository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter staff.EmployeeFilter) ([]staff.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter staff.EmployeeFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *staff.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) HasSalaryRecords(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(bool), args.Error(1)
}

func newTestService(recordRepo *MockSalaryRecordRepository, employeeRepo *MockEmployeeRepository) *Service {
	return NewService(recordRepo, employeeRepo, decimal.NewFromInt(500000), zap.NewNop())
}

func newTestEmployee(t *testing.T, role string) *staff.Employee {
	t.Helper()
	employee, err := staff.NewEmployee("Carla", role, "", "", time.Now())
	require.NoError(t, err)
	return employee
}

func newTestRecord(t *testing.T, role string, sales decimal.Decimal) *payroll.SalaryRecord {
	t.Helper()
	record, err := payroll.NewSalaryRecord(uuid.New(), "Carla", role, 2026, 3)
	require.NoError(t, err)
	require.NoError(t, record.UpdateAmounts(sales, decimal.Zero, decimal.Zero, decimal.Zero,
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, nil))
	return record
}

func TestService_Create(t *testing.T) {
	recordRepo := new(MockSalaryRecordRepository)
	employeeRepo := new(MockEmployeeRepository)
	service := newTestService(recordRepo, employeeRepo)

	employee := newTestEmployee(t, "manicurista")
	employeeRepo.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
	recordRepo.On("ExistsForPeriod", mock.Anything, employee.ID, 2026, 3).Return(false, nil)
	recordRepo.On("Save", mock.Anything, mock.AnythingOfType("*payroll.SalaryRecord")).Return(nil)

	resp, err := service.Create(context.Background(), CreateSalaryRecordRequest{
		EmployeeID:  employee.ID.String(),
		PeriodYear:  2026,
		PeriodMonth: 3,
		SalesAmount: decimal.NewFromInt(100000),
	})

	require.NoError(t, err)
	assert.Equal(t, "Carla", resp.EmployeeName)
	assert.Equal(t, "manicurista", resp.Role)
	recordRepo.AssertExpectations(t)
}

func TestService_Create_DuplicatePeriod(t *testing.T) {
	recordRepo := new(MockSalaryRecordRepository)
	employeeRepo := new(MockEmployeeRepository)
	service := newTestService(recordRepo, employeeRepo)

	employee := newTestEmployee(t, "peluquera")
	employeeRepo.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
	recordRepo.On("ExistsForPeriod", mock.Anything, employee.ID, 2026, 3).Return(true, nil)

	_, err := service.Create(context.Background(), CreateSalaryRecordRequest{
		EmployeeID:  employee.ID.String(),
		PeriodYear:  2026,
		PeriodMonth: 3,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	recordRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_ComputeSingle(t *testing.T) {
	recordRepo := new(MockSalaryRecordRepository)
	service := newTestService(recordRepo, new(MockEmployeeRepository))

	record := newTestRecord(t, "manicurista", decimal.NewFromInt(100000))
	recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	resp, err := service.ComputeSingle(context.Background(), record.ID)

	require.NoError(t, err)
	assert.Equal(t, VariantSingle, resp.Breakdown.Variant)
	assert.True(t, resp.Breakdown.Commission.Equal(decimal.NewFromInt(32000)),
		"commission = %s", resp.Breakdown.Commission)
	assert.True(t, resp.Breakdown.CashTotal.Equal(decimal.NewFromInt(32000)))
}

func TestService_ComputeGlobal_TopUp(t *testing.T) {
	recordRepo := new(MockSalaryRecordRepository)
	service := newTestService(recordRepo, new(MockEmployeeRepository))

	record := newTestRecord(t, "peluquera", decimal.NewFromInt(100000))
	recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	resp, err := service.ComputeGlobal(context.Background(), record.ID)

	require.NoError(t, err)
	assert.Equal(t, VariantGlobal, resp.Breakdown.Variant)
	// gross = 30000, top-up fills the gap to 500000
	assert.True(t, resp.Breakdown.InsuredTopUp.Equal(decimal.NewFromInt(470000)),
		"top-up = %s", resp.Breakdown.InsuredTopUp)
}

func TestService_GlobalSheet(t *testing.T) {
	recordRepo := new(MockSalaryRecordRepository)
	service := newTestService(recordRepo, new(MockEmployeeRepository))

	first := newTestRecord(t, "manicurista", decimal.NewFromInt(2000000))
	second := newTestRecord(t, "peluquera", decimal.NewFromInt(100000))
	recordRepo.On("FindAll", mock.Anything, mock.AnythingOfType("payroll.SalaryRecordFilter")).
		Return([]payroll.SalaryRecord{*first, *second}, nil)

	sheet, err := service.GlobalSheet(context.Background(), 2026, 3)

	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	// 640000 + 30000 in cash, only the second row needs a top-up
	assert.True(t, sheet.TotalCash.Equal(decimal.NewFromInt(670000)), "cash = %s", sheet.TotalCash)
	assert.True(t, sheet.TotalTopUp.Equal(decimal.NewFromInt(470000)), "top-up = %s", sheet.TotalTopUp)
}

func TestService_GlobalSheet_InvalidPeriod(t *testing.T) {
	service := newTestService(new(MockSalaryRecordRepository), new(MockEmployeeRepository))

	_, err := service.GlobalSheet(context.Background(), 2026, 13)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
}
