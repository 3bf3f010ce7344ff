package integration

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	billingapp "github.com/salon/backend/internal/application/billing"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/infrastructure/event"
	"github.com/salon/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestInvoiceFlow_Integration drives an invoice from draft to issued
// against a real PostgreSQL database.
func TestInvoiceFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	t.Cleanup(testDB.CleanTables)

	repo := persistence.NewGormInvoiceRepository(testDB.DB)
	bus := event.NewInMemoryBus(zap.NewNop())
	taxRate := decimal.NewFromInt(21)
	svc := billingapp.NewService(repo, bus, taxRate, zap.NewNop())
	ctx := context.Background()

	draft, err := svc.Create(ctx, billingapp.CreateInvoiceRequest{
		CustomerName: "Maria Gomez",
		Lines: []billingapp.InvoiceLineInput{
			{Description: "Corte y brushing", Quantity: 1, UnitPrice: decimal.NewFromInt(15000)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, billing.InvoiceStatusDraft.String(), draft.Status)
	assert.Empty(t, draft.InvoiceNumber)

	draftID, err := uuid.Parse(draft.ID)
	require.NoError(t, err)

	t.Run("add line recomputes totals", func(t *testing.T) {
		updated, err := svc.AddLine(ctx, draftID, billingapp.AddLineRequest{
			Description: "Esmaltado",
			Quantity:    2,
			UnitPrice:   decimal.NewFromInt(5000),
		})
		require.NoError(t, err)

		require.Len(t, updated.Lines, 2)
		assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(25000)))
		assert.True(t, updated.TaxAmount.Equal(decimal.NewFromInt(5250)))
		assert.True(t, updated.Total.Equal(decimal.NewFromInt(30250)))
	})

	t.Run("issue stamps number and CAE", func(t *testing.T) {
		issued, err := svc.Issue(ctx, draftID)
		require.NoError(t, err)

		period := time.Now().Format("200601")
		assert.Equal(t, fmt.Sprintf("INV-%s-00001", period), issued.InvoiceNumber)
		assert.Regexp(t, regexp.MustCompile(`^\d{14}$`), issued.CAE)
		require.NotNil(t, issued.IssueDate)
		require.NotNil(t, issued.CAEDueDate)
		assert.Equal(t,
			issued.IssueDate.AddDate(0, 0, billing.CAEValidityDays).Truncate(time.Second),
			issued.CAEDueDate.Truncate(time.Second))
	})

	t.Run("issued invoice rejects further edits", func(t *testing.T) {
		_, err := svc.AddLine(ctx, draftID, billingapp.AddLineRequest{
			Description: "Extra", Quantity: 1, UnitPrice: decimal.NewFromInt(1000),
		})
		assert.Error(t, err)

		err = svc.Delete(ctx, draftID)
		assert.Error(t, err, "only drafts may be deleted")
	})

	t.Run("numbering increments within the period", func(t *testing.T) {
		second, err := svc.Create(ctx, billingapp.CreateInvoiceRequest{
			CustomerName: "Lucia Perez",
			Lines: []billingapp.InvoiceLineInput{
				{Description: "Manicura", Quantity: 1, UnitPrice: decimal.NewFromInt(8000)},
			},
		})
		require.NoError(t, err)

		secondID, err := uuid.Parse(second.ID)
		require.NoError(t, err)

		issued, err := svc.Issue(ctx, secondID)
		require.NoError(t, err)

		period := time.Now().Format("200601")
		assert.Equal(t, fmt.Sprintf("INV-%s-00002", period), issued.InvoiceNumber)
	})

	t.Run("void annuls an issued invoice", func(t *testing.T) {
		voided, err := svc.Void(ctx, draftID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusVoided.String(), voided.Status)
	})
}
