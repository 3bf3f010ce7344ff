package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/staff"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEmployeeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.EmployeeModel{}, &models.SalaryRecordModel{})
	require.NoError(t, err)

	return db
}

func newTestEmployee(t *testing.T, name, role string) *staff.Employee {
	t.Helper()
	employee, err := staff.NewEmployee(name, role, "", "", time.Now())
	require.NoError(t, err)
	return employee
}

func TestGormEmployeeRepository_SaveAndFindByID(t *testing.T) {
	db := setupEmployeeTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee(t, "Laura Diaz", "Manicurista")
	require.NoError(t, repo.Save(ctx, employee))

	found, err := repo.FindByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.ID, found.ID)
	assert.Equal(t, "Laura Diaz", found.Name)
	assert.Equal(t, "Manicurista", found.Role)
	assert.True(t, found.Active)
}

func TestGormEmployeeRepository_FindByID_NotFound(t *testing.T) {
	db := setupEmployeeTestDB(t)
	repo := NewGormEmployeeRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormEmployeeRepository_FindAll_Filters(t *testing.T) {
	db := setupEmployeeTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestEmployee(t, "Laura Diaz", "Manicurista")))
	require.NoError(t, repo.Save(ctx, newTestEmployee(t, "Carla Ruiz", "Estilista")))

	inactive := newTestEmployee(t, "Sofia Paz", "Estilista")
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	role := "Estilista"
	byRole, err := repo.FindAll(ctx, staff.EmployeeFilter{Role: &role})
	require.NoError(t, err)
	assert.Len(t, byRole, 2)

	active := true
	activeOnly, err := repo.FindAll(ctx, staff.EmployeeFilter{Active: &active})
	require.NoError(t, err)
	assert.Len(t, activeOnly, 2)

	count, err := repo.Count(ctx, staff.EmployeeFilter{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormEmployeeRepository_Delete(t *testing.T) {
	db := setupEmployeeTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee(t, "Laura Diaz", "Manicurista")
	require.NoError(t, repo.Save(ctx, employee))

	require.NoError(t, repo.Delete(ctx, employee.ID))

	_, err := repo.FindByID(ctx, employee.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormEmployeeRepository_HasSalaryRecords(t *testing.T) {
	db := setupEmployeeTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee(t, "Laura Diaz", "Manicurista")
	require.NoError(t, repo.Save(ctx, employee))

	has, err := repo.HasSalaryRecords(ctx, employee.ID)
	require.NoError(t, err)
	assert.False(t, has)

	record := models.SalaryRecordModel{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Role:         employee.Role,
		PeriodYear:   2026,
		PeriodMonth:  7,
		SalesAmount:  decimal.NewFromInt(100000),
		Extras:       "[]",
	}
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	record.Version = 1
	require.NoError(t, db.Create(&record).Error)

	has, err = repo.HasSalaryRecords(ctx, employee.ID)
	require.NoError(t, err)
	assert.True(t, has)
}
