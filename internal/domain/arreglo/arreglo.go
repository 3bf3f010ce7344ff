package arreglo

import (
	"strings"
	"time"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// Status is the lifecycle state of an arreglo
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// CanStart returns true if work can begin from this status
func (s Status) CanStart() bool {
	return s == StatusPending
}

// CanComplete returns true if the job can be completed from this status
func (s Status) CanComplete() bool {
	return s == StatusInProgress
}

// CanCancel returns true if the job can be cancelled from this status
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusInProgress
}

// IsTerminal returns true if no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Arreglo is a customer fix job (garment adjustments, small repairs)
// taken in at the counter and delivered later.
type Arreglo struct {
	shared.BaseAggregateRoot
	CustomerName  string
	CustomerPhone string
	Description   string
	Price         valueobject.Money
	Status        Status
	ReceivedDate  time.Time
	PromisedDate  *time.Time
	DeliveredDate *time.Time
}

// NewArreglo creates a pending arreglo
func NewArreglo(customerName, customerPhone, description string, price valueobject.Money, receivedDate time.Time, promisedDate *time.Time) (*Arreglo, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if receivedDate.IsZero() {
		receivedDate = time.Now()
	}
	if promisedDate != nil && promisedDate.Before(receivedDate) {
		return nil, shared.NewDomainError("INVALID_PROMISED_DATE", "Promised date cannot precede received date")
	}

	return &Arreglo{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		CustomerPhone:     strings.TrimSpace(customerPhone),
		Description:       description,
		Price:             price,
		Status:            StatusPending,
		ReceivedDate:      receivedDate,
		PromisedDate:      promisedDate,
	}, nil
}

// Start moves the job to in progress
func (a *Arreglo) Start() error {
	if !a.Status.CanStart() {
		return shared.NewDomainError("INVALID_STATE",
			"Arreglo can only be started from pending, current status: "+a.Status.String())
	}
	a.Status = StatusInProgress
	a.Touch()
	return nil
}

// Complete finishes the job and records the delivery time
func (a *Arreglo) Complete(deliveredAt time.Time) error {
	if !a.Status.CanComplete() {
		return shared.NewDomainError("INVALID_STATE",
			"Arreglo can only be completed from in progress, current status: "+a.Status.String())
	}
	if deliveredAt.IsZero() {
		deliveredAt = time.Now()
	}
	a.Status = StatusCompleted
	a.DeliveredDate = &deliveredAt
	a.Touch()
	return nil
}

// Cancel abandons the job
func (a *Arreglo) Cancel() error {
	if !a.Status.CanCancel() {
		return shared.NewDomainError("INVALID_STATE",
			"Arreglo cannot be cancelled, current status: "+a.Status.String())
	}
	a.Status = StatusCancelled
	a.Touch()
	return nil
}

// Update edits the job details. Only pending jobs can change.
func (a *Arreglo) Update(customerName, customerPhone, description string, price valueobject.Money, promisedDate *time.Time) error {
	if a.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending arreglos can be edited")
	}
	if strings.TrimSpace(customerName) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if promisedDate != nil && promisedDate.Before(a.ReceivedDate) {
		return shared.NewDomainError("INVALID_PROMISED_DATE", "Promised date cannot precede received date")
	}
	a.CustomerName = customerName
	a.CustomerPhone = strings.TrimSpace(customerPhone)
	a.Description = description
	a.Price = price
	a.PromisedDate = promisedDate
	a.Touch()
	return nil
}
