package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateInvoiceError(t *testing.T) {
	t.Run("duplicated key maps to already-exists sentinel", func(t *testing.T) {
		err := translateInvoiceError(gorm.ErrDuplicatedKey)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("wrapped duplicated key maps as well", func(t *testing.T) {
		err := translateInvoiceError(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		assert.ErrorIs(t, translateInvoiceError(cause), cause)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateInvoiceError(nil))
	})
}
