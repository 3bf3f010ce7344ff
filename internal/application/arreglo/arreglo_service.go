// Package arreglo contains the application services for customer fix
// jobs taken in at the counter.
package arreglo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/arreglo"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles arreglo operations
type Service struct {
	arregloRepo arreglo.Repository
	logger      *zap.Logger
}

// NewService creates an arreglo service
func NewService(arregloRepo arreglo.Repository, logger *zap.Logger) *Service {
	return &Service{arregloRepo: arregloRepo, logger: logger}
}

// Create takes in a new pending job
func (s *Service) Create(ctx context.Context, req CreateArregloRequest) (*ArregloResponse, error) {
	price, err := valueobject.NewMoney(req.Price, valueobject.ARS)
	if err != nil {
		return nil, err
	}
	receivedDate := time.Time{}
	if req.ReceivedDate != nil {
		receivedDate = *req.ReceivedDate
	}
	job, err := arreglo.NewArreglo(req.CustomerName, req.CustomerPhone, req.Description,
		price, receivedDate, req.PromisedDate)
	if err != nil {
		return nil, err
	}
	if err := s.arregloRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("arreglo received",
		zap.String("arreglo_id", job.ID.String()),
		zap.String("customer", job.CustomerName),
	)

	resp := toArregloResponse(job)
	return &resp, nil
}

// Get returns one job
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ArregloResponse, error) {
	job, err := s.arregloRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toArregloResponse(job)
	return &resp, nil
}

// Update edits a pending job
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateArregloRequest) (*ArregloResponse, error) {
	job, err := s.arregloRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	price, err := valueobject.NewMoney(req.Price, valueobject.ARS)
	if err != nil {
		return nil, err
	}
	if err := job.Update(req.CustomerName, req.CustomerPhone, req.Description, price, req.PromisedDate); err != nil {
		return nil, err
	}
	if err := s.arregloRepo.SaveWithLock(ctx, job); err != nil {
		return nil, err
	}
	resp := toArregloResponse(job)
	return &resp, nil
}

// Start moves a job to in progress
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*ArregloResponse, error) {
	return s.transition(ctx, id, func(job *arreglo.Arreglo) error { return job.Start() })
}

// Complete finishes a job, recording delivery now
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*ArregloResponse, error) {
	return s.transition(ctx, id, func(job *arreglo.Arreglo) error { return job.Complete(time.Now()) })
}

// Cancel abandons a job
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*ArregloResponse, error) {
	return s.transition(ctx, id, func(job *arreglo.Arreglo) error { return job.Cancel() })
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, apply func(*arreglo.Arreglo) error) (*ArregloResponse, error) {
	job, err := s.arregloRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(job); err != nil {
		return nil, err
	}
	if err := s.arregloRepo.SaveWithLock(ctx, job); err != nil {
		return nil, err
	}
	resp := toArregloResponse(job)
	return &resp, nil
}

// Delete removes a job
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.arregloRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.arregloRepo.Delete(ctx, id)
}

// List returns jobs matching the filter
func (s *Service) List(ctx context.Context, req ListArreglosRequest) ([]ArregloResponse, int64, error) {
	filter := arreglo.ArregloFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
	}
	if req.Status != "" {
		status := arreglo.Status(req.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATE", "Unknown arreglo status")
		}
		filter.Status = &status
	}
	if req.ReceivedFrom != "" {
		from, err := time.Parse("2006-01-02", req.ReceivedFrom)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "received_from must be YYYY-MM-DD")
		}
		filter.ReceivedFrom = &from
	}
	if req.ReceivedTo != "" {
		to, err := time.Parse("2006-01-02", req.ReceivedTo)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "received_to must be YYYY-MM-DD")
		}
		filter.ReceivedTo = &to
	}

	jobs, err := s.arregloRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.arregloRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ArregloResponse, len(jobs))
	for i := range jobs {
		responses[i] = toArregloResponse(&jobs[i])
	}
	return responses, total, nil
}
