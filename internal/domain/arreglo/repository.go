package arreglo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ArregloFilter describes query options for listing arreglos
type ArregloFilter struct {
	shared.Filter
	Status       *Status
	ReceivedFrom *time.Time
	ReceivedTo   *time.Time
}

// Repository defines persistence for arreglos
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Arreglo, error)
	FindAll(ctx context.Context, filter ArregloFilter) ([]Arreglo, error)
	Count(ctx context.Context, filter ArregloFilter) (int64, error)
	Save(ctx context.Context, arreglo *Arreglo) error
	SaveWithLock(ctx context.Context, arreglo *Arreglo) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumCompletedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
