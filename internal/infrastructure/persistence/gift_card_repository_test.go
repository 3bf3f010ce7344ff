package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGiftCardRepository creates a GormGiftCardRepository with a mocked SQL connection
func newMockGiftCardRepository(t *testing.T) (*GormGiftCardRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormGiftCardRepository(gormDB), mock, mockDB
}

func TestGormGiftCardRepository_FindByID(t *testing.T) {
	t.Run("finds existing gift card", func(t *testing.T) {
		repo, mock, mockDB := newMockGiftCardRepository(t)
		defer mockDB.Close()

		cardID := uuid.New()
		purchase := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		expiry := purchase.AddDate(0, 0, 30)

		rows := sqlmock.NewRows([]string{"id", "version", "code", "amount", "currency", "customer_name", "purchase_date", "expiry_date"}).
			AddRow(cardID, 1, "GC-0001", decimal.NewFromInt(15000), "ARS", "Ana Gomez", purchase, expiry)

		mock.ExpectQuery(`SELECT \* FROM "gift_cards" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(cardID, 1).
			WillReturnRows(rows)

		card, err := repo.FindByID(context.Background(), cardID)

		assert.NoError(t, err)
		assert.NotNil(t, card)
		assert.Equal(t, cardID, card.ID)
		assert.Equal(t, "GC-0001", card.Code)
		assert.Equal(t, giftcard.StatusActive, card.StatusAt(purchase.AddDate(0, 0, 10)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing card", func(t *testing.T) {
		repo, mock, mockDB := newMockGiftCardRepository(t)
		defer mockDB.Close()

		cardID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "gift_cards" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(cardID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		card, err := repo.FindByID(context.Background(), cardID)

		assert.Error(t, err)
		assert.Nil(t, card)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormGiftCardRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when code exists", func(t *testing.T) {
		repo, mock, mockDB := newMockGiftCardRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "gift_cards" WHERE code = \$1`).
			WithArgs("GC-0001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "GC-0001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when code is free", func(t *testing.T) {
		repo, mock, mockDB := newMockGiftCardRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "gift_cards" WHERE code = \$1`).
			WithArgs("GC-0002").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCode(context.Background(), "GC-0002")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormGiftCardRepository_SumRedeemedBetween(t *testing.T) {
	t.Run("sums redeemed amounts in range", func(t *testing.T) {
		repo, mock, mockDB := newMockGiftCardRepository(t)
		defer mockDB.Close()

		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "gift_cards"`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.NewFromInt(45000)))

		total, err := repo.SumRedeemedBetween(context.Background(), from, to)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(45000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty range sums to zero", func(t *testing.T) {
		repo, mock, mockDB := newMockGiftCardRepository(t)
		defer mockDB.Close()

		from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "gift_cards"`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.Zero))

		total, err := repo.SumRedeemedBetween(context.Background(), from, to)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
