package service

import (
	"context"
	"errors"

	"github.com/RividuPesara/apex-auto/internal/model"
	"github.com/RividuPesara/apex-auto/internal/repository"
)

var (
	ErrCarModelNotFound = errors.New("model not found")
	ErrServiceNotFound  = errors.New("service not found")
)

// CatalogService reads the car-model and modification-service reference data.
// The catalog is read-only from the API's point of view; writes happen only
// through seeding.
type CatalogService interface {
	ListCarModels(ctx context.Context, search string, listingType string) ([]model.CarModel, error)
	GetCarModel(ctx context.Context, id string) (*model.CarModel, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
}

type catalogService struct {
	carModelRepo repository.CarModelRepository
	serviceRepo  repository.ServiceRepository
}

func NewCatalogService(carModelRepo repository.CarModelRepository, serviceRepo repository.ServiceRepository) CatalogService {
	return &catalogService{carModelRepo: carModelRepo, serviceRepo: serviceRepo}
}

func (s *catalogService) ListCarModels(ctx context.Context, search string, listingType string) ([]model.CarModel, error) {
	return s.carModelRepo.List(ctx, search, listingType)
}

func (s *catalogService) GetCarModel(ctx context.Context, id string) (*model.CarModel, error) {
	m, err := s.carModelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrCarModelNotFound
	}
	return m, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	return s.serviceRepo.List(ctx)
}

func (s *catalogService) GetService(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}
