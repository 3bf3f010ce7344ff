package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockExpenseRepository is a mock implementation of expense.Repository
type MockExpenseRepository struct {
	mock.Mock
}

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
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) SumByCategoryBetween(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]expense.CategoryTotal), args.Error(1)
}

func TestService_Create(t *testing.T) {
	repo := new(MockExpenseRepository)
	service := NewService(repo, zap.NewNop())

	repo.On("Save", mock.Anything, mock.AnythingOfType("*expense.ExpenseRecord")).Return(nil)

	resp, err := service.Create(context.Background(), CreateExpenseRequest{
		Category:    "rent",
		Description: "Alquiler marzo",
		Amount:      decimal.NewFromInt(300000),
		ExpenseDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "rent", resp.Category)
	assert.Equal(t, "Rent", resp.CategoryLabel)
}

func TestService_Create_UnknownCategory(t *testing.T) {
	service := NewService(new(MockExpenseRepository), zap.NewNop())

	_, err := service.Create(context.Background(), CreateExpenseRequest{
		Category:    "gadgets",
		Description: "x",
		Amount:      decimal.NewFromInt(10),
		ExpenseDate: time.Now(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestService_CategoryReport(t *testing.T) {
	repo := new(MockExpenseRepository)
	service := NewService(repo, zap.NewNop())

	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	february := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	repo.On("SumByCategoryBetween", mock.Anything, march, april).Return([]expense.CategoryTotal{
		{Category: expense.CategoryRent, Total: decimal.NewFromInt(300000), Count: 1},
		{Category: expense.CategoryProducts, Total: decimal.NewFromInt(100000), Count: 4},
	}, nil)
	repo.On("SumByCategoryBetween", mock.Anything, february, march).Return([]expense.CategoryTotal{
		{Category: expense.CategoryRent, Total: decimal.NewFromInt(250000), Count: 1},
	}, nil)

	resp, err := service.CategoryReport(context.Background(), 2026, 3)

	require.NoError(t, err)
	assert.Equal(t, "2026-03", resp.Period)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(400000)))
	require.Len(t, resp.Categories, 2)

	rent := resp.Categories[0]
	assert.Equal(t, "rent", rent.Category)
	assert.True(t, rent.PercentOfTotal.Equal(decimal.NewFromInt(75)), "share = %s", rent.PercentOfTotal)
	require.NotNil(t, rent.PercentChange)
	assert.True(t, rent.PercentChange.Equal(decimal.NewFromInt(20)), "change = %s", rent.PercentChange)
	assert.False(t, rent.NoPriorData)

	products := resp.Categories[1]
	assert.Nil(t, products.PercentChange)
	assert.True(t, products.NoPriorData)
	assert.True(t, products.PercentOfTotal.Equal(decimal.NewFromInt(25)))
}

func TestService_CategoryReport_InvalidPeriod(t *testing.T) {
	service := NewService(new(MockExpenseRepository), zap.NewNop())

	_, err := service.CategoryReport(context.Background(), 1990, 1)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
}
