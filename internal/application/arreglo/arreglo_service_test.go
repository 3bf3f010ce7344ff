package arreglo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/arreglo"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockArregloRepository is a mock implementation of arreglo.Repository
type MockArregloRepository struct {
	mock.Mock
}

func (m *MockArregloRepository) FindByID(ctx context.Context, id uuid.UUID) (*arreglo.Arreglo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*arreglo.Arreglo), args.Error(1)
}

func (m *MockArregloRepository) FindAll(ctx context.Context, filter arreglo.ArregloFilter) ([]arreglo.Arreglo, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]arreglo.Arreglo), args.Error(1)
}

func (m *MockArregloRepository) Count(ctx context.Context, filter arreglo.ArregloFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArregloRepository) Save(ctx context.Context, job *arreglo.Arreglo) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockArregloRepository) SaveWithLock(ctx context.Context, job *arreglo.Arreglo) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockArregloRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArregloRepository) SumCompletedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newJob(t *testing.T) *arreglo.Arreglo {
	t.Helper()
	job, err := arreglo.NewArreglo("Marta", "", "Ajuste de vestido",
		valueobject.NewMoneyARS(decimal.NewFromInt(8000)), time.Now(), nil)
	require.NoError(t, err)
	return job
}

func TestService_Lifecycle(t *testing.T) {
	repo := new(MockArregloRepository)
	service := NewService(repo, zap.NewNop())

	job := newJob(t)
	repo.On("FindByID", mock.Anything, job.ID).Return(job, nil)
	repo.On("SaveWithLock", mock.Anything, job).Return(nil)

	started, err := service.Start(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, arreglo.StatusInProgress.String(), started.Status)

	completed, err := service.Complete(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, arreglo.StatusCompleted.String(), completed.Status)
	require.NotNil(t, completed.DeliveredDate)
}

func TestService_Complete_FromPending(t *testing.T) {
	repo := new(MockArregloRepository)
	service := NewService(repo, zap.NewNop())

	job := newJob(t)
	repo.On("FindByID", mock.Anything, job.ID).Return(job, nil)

	_, err := service.Complete(context.Background(), job.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestService_Cancel_Terminal(t *testing.T) {
	repo := new(MockArregloRepository)
	service := NewService(repo, zap.NewNop())

	job := newJob(t)
	require.NoError(t, job.Start())
	require.NoError(t, job.Complete(time.Now()))
	repo.On("FindByID", mock.Anything, job.ID).Return(job, nil)

	_, err := service.Cancel(context.Background(), job.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
