package export

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSalaryRecordRepository struct{ mock.Mock }

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
	return m.Called(ctx, record).Error(0)
}
func (m *MockSalaryRecordRepository) SaveWithLock(ctx context.Context, record *payroll.SalaryRecord) error {
	return m.Called(ctx, record).Error(0)
}
func (m *MockSalaryRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockSalaryRecordRepository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (bool, error) {
	args := m.Called(ctx, employeeID, year, month)
	return args.Get(0).(bool), args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}
func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}
func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}
func (m *MockInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}
func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}
func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, yearMonth string) (string, error) {
	args := m.Called(ctx, yearMonth)
	return args.Get(0).(string), args.Error(1)
}
func (m *MockInvoiceRepository) SumIssuedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockGiftCardRepository struct{ mock.Mock }

func (m *MockGiftCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*giftcard.GiftCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*giftcard.GiftCard), args.Error(1)
}
func (m *MockGiftCardRepository) FindByCode(ctx context.Context, code string) (*giftcard.GiftCard, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*giftcard.GiftCard), args.Error(1)
}
func (m *MockGiftCardRepository) FindAll(ctx context.Context, filter giftcard.GiftCardFilter) ([]giftcard.GiftCard, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]giftcard.GiftCard), args.Error(1)
}
func (m *MockGiftCardRepository) Count(ctx context.Context, filter giftcard.GiftCardFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockGiftCardRepository) Save(ctx context.Context, card *giftcard.GiftCard) error {
	return m.Called(ctx, card).Error(0)
}
func (m *MockGiftCardRepository) SaveWithLock(ctx context.Context, card *giftcard.GiftCard) error {
	return m.Called(ctx, card).Error(0)
}
func (m *MockGiftCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockGiftCardRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(bool), args.Error(1)
}
func (m *MockGiftCardRepository) FindCodes(ctx context.Context, codes []string) ([]string, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockGiftCardRepository) SumRedeemedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockExpenseRepository struct{ mock.Mock }

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.ExpenseRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.ExpenseRecord), args.Error(1)
}
func (m *MockExpenseRepository) FindAll(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]expense.ExpenseRecord), args.Error(1)
}
func (m *MockExpenseRepository) Count(ctx context.Context, filter expense.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockExpenseRepository) Save(ctx context.Context, record *expense.ExpenseRecord) error {
	return m.Called(ctx, record).Error(0)
}
func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockExpenseRepository) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockExpenseRepository) SumByCategoryBetween(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]expense.CategoryTotal), args.Error(1)
}

func newExportService(records *MockSalaryRecordRepository, invoices *MockInvoiceRepository,
	cards *MockGiftCardRepository, expenses *MockExpenseRepository) *Service {
	return NewService(records, invoices, cards, expenses, decimal.NewFromInt(500000), zap.NewNop())
}

func sampleRecord(t *testing.T) *payroll.SalaryRecord {
	t.Helper()
	record, err := payroll.NewSalaryRecord(uuid.New(), "Laura", "manicurista", 2026, 8)
	require.NoError(t, err)
	require.NoError(t, record.UpdateAmounts(decimal.NewFromInt(100000), decimal.Zero, decimal.Zero,
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, nil))
	return record
}

func TestService_SalaryReceipt(t *testing.T) {
	records := new(MockSalaryRecordRepository)
	service := newExportService(records, new(MockInvoiceRepository), new(MockGiftCardRepository), new(MockExpenseRepository))

	record := sampleRecord(t)
	records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	file, err := service.SalaryReceipt(context.Background(), record.ID, VariantSingle)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Contains(t, file.Name, "2026-08")
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestService_SalaryReceipt_UnknownVariant(t *testing.T) {
	records := new(MockSalaryRecordRepository)
	service := newExportService(records, new(MockInvoiceRepository), new(MockGiftCardRepository), new(MockExpenseRepository))

	record := sampleRecord(t)
	records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	_, err := service.SalaryReceipt(context.Background(), record.ID, "weekly")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestService_InvoicePDF_Draft(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	service := newExportService(new(MockSalaryRecordRepository), invoices, new(MockGiftCardRepository), new(MockExpenseRepository))

	invoice, err := billing.NewInvoice("Cliente SA", "", decimal.NewFromInt(21))
	require.NoError(t, err)
	require.NoError(t, invoice.AddLine("Corte y color", 1, decimal.NewFromInt(25000)))
	invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)

	file, err := service.InvoicePDF(context.Background(), invoice.ID)

	require.NoError(t, err)
	assert.Equal(t, "factura_borrador.pdf", file.Name)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestService_MonthlyBundle(t *testing.T) {
	records := new(MockSalaryRecordRepository)
	cards := new(MockGiftCardRepository)
	expenses := new(MockExpenseRepository)
	service := newExportService(records, new(MockInvoiceRepository), cards, expenses)

	record := sampleRecord(t)
	records.On("FindAll", mock.Anything, mock.AnythingOfType("payroll.SalaryRecordFilter")).
		Return([]payroll.SalaryRecord{*record}, nil)

	expenseRecord, err := expense.NewExpenseRecord(expense.CategoryRent, "Alquiler agosto",
		valueobject.NewMoneyARS(decimal.NewFromInt(250000)),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), expense.PaymentTransfer, "")
	require.NoError(t, err)
	expenses.On("FindAll", mock.Anything, mock.AnythingOfType("expense.ExpenseFilter")).
		Return([]expense.ExpenseRecord{*expenseRecord}, nil)

	card, err := giftcard.NewGiftCard("GC-100", valueobject.NewMoneyARS(decimal.NewFromInt(15000)),
		"Ana", "ana@example.com", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), nil, 30, "")
	require.NoError(t, err)
	cards.On("FindAll", mock.Anything, mock.AnythingOfType("giftcard.GiftCardFilter")).
		Return([]giftcard.GiftCard{*card}, nil)

	file, err := service.MonthlyBundle(context.Background(), 2026, 8)

	require.NoError(t, err)
	assert.Equal(t, "cierre_2026-08.zip", file.Name)
	assert.Equal(t, "application/zip", file.ContentType)

	reader, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)
	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"sueldos_2026-08.xlsx",
		"gastos_2026-08.xlsx",
		"giftcards_2026-08.xlsx",
	}, names)
}

func TestService_MonthlyBundle_InvalidPeriod(t *testing.T) {
	service := newExportService(new(MockSalaryRecordRepository), new(MockInvoiceRepository),
		new(MockGiftCardRepository), new(MockExpenseRepository))

	_, err := service.MonthlyBundle(context.Background(), 2026, 13)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
}
