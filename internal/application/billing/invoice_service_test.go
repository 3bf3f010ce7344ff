package billing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInvoiceRepository is a mock implementation of billing.Repository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
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
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, yearMonth string) (string, error) {
	args := m.Called(ctx, yearMonth)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockInvoiceRepository) SumIssuedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newService(repo *MockInvoiceRepository) *Service {
	return NewService(repo, event.NewInMemoryBus(zap.NewNop()), decimal.NewFromInt(21), zap.NewNop())
}

func newDraft(t *testing.T) *billing.Invoice {
	t.Helper()
	invoice, err := billing.NewInvoice("Lucia", "27-11111111-3", decimal.NewFromInt(21))
	require.NoError(t, err)
	require.NoError(t, invoice.AddLine("Corte y color", 1, decimal.NewFromInt(20000)))
	return invoice
}

func TestService_Create_WithLines(t *testing.T) {
	repo := new(MockInvoiceRepository)
	service := newService(repo)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	resp, err := service.Create(context.Background(), CreateInvoiceRequest{
		CustomerName: "Lucia",
		Lines: []InvoiceLineInput{
			{Description: "Corte", Quantity: 1, UnitPrice: decimal.NewFromInt(10000)},
			{Description: "Color", Quantity: 1, UnitPrice: decimal.NewFromInt(15000)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusDraft.String(), resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(25000)))
	// 21% VAT
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromInt(5250)), "tax = %s", resp.TaxAmount)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(30250)))
}

func TestService_Issue(t *testing.T) {
	repo := new(MockInvoiceRepository)
	service := newService(repo)

	invoice := newDraft(t)
	repo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	repo.On("GenerateInvoiceNumber", mock.Anything, mock.AnythingOfType("string")).Return("INV-202608-00001", nil)
	repo.On("SaveWithLock", mock.Anything, invoice).Return(nil)

	resp, err := service.Issue(context.Background(), invoice.ID)

	require.NoError(t, err)
	assert.Equal(t, "INV-202608-00001", resp.InvoiceNumber)
	assert.Equal(t, billing.InvoiceStatusIssued.String(), resp.Status)
	assert.Regexp(t, regexp.MustCompile(`^\d{14}$`), resp.CAE)
	require.NotNil(t, resp.IssueDate)
	require.NotNil(t, resp.CAEDueDate)
	assert.WithinDuration(t, resp.IssueDate.AddDate(0, 0, 10), *resp.CAEDueDate, time.Second)
}

func TestService_Issue_EmptyInvoice(t *testing.T) {
	repo := new(MockInvoiceRepository)
	service := newService(repo)

	invoice, err := billing.NewInvoice("Lucia", "", decimal.NewFromInt(21))
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	repo.On("GenerateInvoiceNumber", mock.Anything, mock.AnythingOfType("string")).Return("INV-202608-00001", nil)

	_, err = service.Issue(context.Background(), invoice.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_INVOICE", domainErr.Code)
}

func TestService_Issue_RetriesWhenNumberTaken(t *testing.T) {
	repo := new(MockInvoiceRepository)
	service := newService(repo)

	first := newDraft(t)
	second := newDraft(t)
	second.ID = first.ID

	repo.On("FindByID", mock.Anything, first.ID).Return(first, nil).Once()
	repo.On("FindByID", mock.Anything, first.ID).Return(second, nil).Once()
	repo.On("GenerateInvoiceNumber", mock.Anything, mock.AnythingOfType("string")).
		Return("INV-202608-00007", nil).Once()
	repo.On("GenerateInvoiceNumber", mock.Anything, mock.AnythingOfType("string")).
		Return("INV-202608-00008", nil).Once()
	// A concurrent issue claimed 00007 first.
	repo.On("SaveWithLock", mock.Anything, first).Return(shared.ErrAlreadyExists).Once()
	repo.On("SaveWithLock", mock.Anything, second).Return(nil).Once()

	resp, err := service.Issue(context.Background(), first.ID)

	require.NoError(t, err)
	assert.Equal(t, "INV-202608-00008", resp.InvoiceNumber)
	assert.Equal(t, billing.InvoiceStatusIssued.String(), resp.Status)
	repo.AssertExpectations(t)
}

func TestService_Issue_GivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := new(MockInvoiceRepository)
	service := newService(repo)

	id := uuid.New()
	for i := 0; i < 3; i++ {
		draft := newDraft(t)
		draft.ID = id
		repo.On("FindByID", mock.Anything, id).Return(draft, nil).Once()
	}
	repo.On("GenerateInvoiceNumber", mock.Anything, mock.AnythingOfType("string")).
		Return("INV-202608-00009", nil)
	repo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*billing.Invoice")).
		Return(shared.ErrAlreadyExists)

	_, err := service.Issue(context.Background(), id)

	require.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNumberOfCalls(t, "SaveWithLock", 3)
}

func TestService_Delete_IssuedInvoice(t *testing.T) {
	repo := new(MockInvoiceRepository)
	service := newService(repo)

	invoice := newDraft(t)
	require.NoError(t, invoice.Issue("INV-202608-00002", time.Now()))
	repo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)

	err := service.Delete(context.Background(), invoice.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
