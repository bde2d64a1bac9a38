package app

import (
	"context"
	"math"

	"github.com/Jav1009/community-service-api/internal/clock"
	"github.com/Jav1009/community-service-api/internal/domain"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, svc domain.Service) (int64, error)
	Update(ctx context.Context, svc domain.Service) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// CatalogService manages the bookable service offerings.
type CatalogService struct {
	repo   ServiceRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewCatalogService(repo ServiceRepository, clk clock.Clock, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) GetService(ctx context.Context, id int64) (domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	if svc == nil {
		return domain.Service{}, domain.NotFoundf("Service with ID %d not found", id)
	}
	return *svc, nil
}

// CreateServiceInput carries the fields for a new service. Price is a pointer
// so a missing price is distinguishable from zero; IsAvailable defaults to
// true when nil.
type CreateServiceInput struct {
	Name              string
	Description       string
	Price             *float64
	EstimatedDuration int
	IsAvailable       *bool
}

func (s *CatalogService) CreateService(ctx context.Context, in CreateServiceInput) (domain.Service, error) {
	if in.Name == "" || in.Description == "" || in.Price == nil || in.EstimatedDuration == 0 {
		return domain.Service{}, domain.InvalidInputf("name, description, price, and estimated_duration are required")
	}
	if math.IsNaN(*in.Price) || *in.Price < 0 {
		return domain.Service{}, domain.InvalidInputf("price must be a valid non-negative number")
	}
	if in.EstimatedDuration < 0 {
		return domain.Service{}, domain.InvalidInputf("estimated_duration must be a positive number")
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	id, err := s.repo.Create(ctx, domain.Service{
		Name:              in.Name,
		Description:       in.Description,
		Price:             *in.Price,
		EstimatedDuration: in.EstimatedDuration,
		IsAvailable:       available,
	})
	if err != nil {
		return domain.Service{}, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	if created == nil {
		return domain.Service{}, domain.Internalf("service %d missing after create", id)
	}

	s.logger.Info("service created", zap.Int64("service_id", id), zap.String("name", in.Name))
	return *created, nil
}

// UpdateServiceInput uses a pointer per field: nil leaves the stored value
// unchanged, non-nil sets it.
type UpdateServiceInput struct {
	Name              *string
	Description       *string
	Price             *float64
	EstimatedDuration *int
	IsAvailable       *bool
}

func (s *CatalogService) UpdateService(ctx context.Context, id int64, in UpdateServiceInput) (domain.Service, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	if existing == nil {
		return domain.Service{}, domain.NotFoundf("Service with ID %d not found", id)
	}

	if in.Name != nil && *in.Name == "" {
		return domain.Service{}, domain.InvalidInputf("name cannot be empty")
	}
	if in.Description != nil && *in.Description == "" {
		return domain.Service{}, domain.InvalidInputf("description cannot be empty")
	}
	if in.Price != nil && (math.IsNaN(*in.Price) || *in.Price < 0) {
		return domain.Service{}, domain.InvalidInputf("price must be a valid non-negative number")
	}
	if in.EstimatedDuration != nil && *in.EstimatedDuration <= 0 {
		return domain.Service{}, domain.InvalidInputf("estimated_duration must be a positive number")
	}

	merged := *existing
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Description != nil {
		merged.Description = *in.Description
	}
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.EstimatedDuration != nil {
		merged.EstimatedDuration = *in.EstimatedDuration
	}
	if in.IsAvailable != nil {
		merged.IsAvailable = *in.IsAvailable
	}
	merged.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, merged); err != nil {
		return domain.Service{}, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	if updated == nil {
		return domain.Service{}, domain.NotFoundf("Service with ID %d not found", id)
	}

	s.logger.Info("service updated", zap.Int64("service_id", id))
	return *updated, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundf("Service with ID %d not found", id)
	}

	s.logger.Info("service deleted", zap.Int64("service_id", id))
	return nil
}
