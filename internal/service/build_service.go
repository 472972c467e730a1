package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/RividuPesara/apex-auto/internal/events"
	"github.com/RividuPesara/apex-auto/internal/model"
	"github.com/RividuPesara/apex-auto/internal/repository"
)

var (
	ErrBuildNotFound    = errors.New("build not found")
	ErrNotOwner         = errors.New("not authorized to modify this build")
	ErrCarModelRequired = errors.New("car model is required")
	ErrColorRequired    = errors.New("color is required")
)

type CreateBuildInput struct {
	CarModel           string
	Color              string
	SelectedParts      model.SelectedParts
	SelectedServices   model.ServiceIDs
	ModelName          string
	ModelImage         string
	TotalEstimatedCost int64
	Notes              string
}

// BuildPatch is a partial update. Nil means the field was absent from the
// request and keeps its stored value; a non-nil pointer is applied verbatim,
// so "explicitly cleared" and "absent" are distinct. CarModel and Color are
// required fields of every build: patching either to empty is rejected.
type BuildPatch struct {
	CarModel           *string
	Color              *string
	SelectedParts      *model.SelectedParts
	SelectedServices   *model.ServiceIDs
	ModelName          *string
	ModelImage         *string
	TotalEstimatedCost *int64
	Notes              *string
}

type BuildService interface {
	CreateBuild(ctx context.Context, ownerID uuid.UUID, input CreateBuildInput) (*model.Build, error)
	ListBuilds(ctx context.Context, ownerID uuid.UUID) ([]model.Build, error)
	UpdateBuild(ctx context.Context, buildID, ownerID uuid.UUID, patch BuildPatch) (*model.Build, error)
	DeleteBuild(ctx context.Context, buildID, ownerID uuid.UUID) error
}

type buildService struct {
	buildRepo repository.BuildRepository
	publisher events.EventPublisher
}

func NewBuildService(repo repository.BuildRepository, pub events.EventPublisher) BuildService {
	return &buildService{buildRepo: repo, publisher: pub}
}

func (s *buildService) CreateBuild(ctx context.Context, ownerID uuid.UUID, input CreateBuildInput) (*model.Build, error) {
	if input.CarModel == "" {
		return nil, ErrCarModelRequired
	}
	if input.Color == "" {
		return nil, ErrColorRequired
	}

	build := &model.Build{
		UserID:             ownerID,
		CarModel:           input.CarModel,
		Color:              input.Color,
		SelectedParts:      input.SelectedParts.WithDefaults(),
		SelectedServices:   input.SelectedServices,
		ModelName:          input.ModelName,
		ModelImage:         input.ModelImage,
		TotalEstimatedCost: input.TotalEstimatedCost,
		Notes:              input.Notes,
	}

	createdBuild, err := s.buildRepo.Create(ctx, build)

	if err != nil {
		return nil, err
	}

	go s.publisher.PublishBuildCreated(createdBuild)

	return createdBuild, nil
}

func (s *buildService) ListBuilds(ctx context.Context, ownerID uuid.UUID) ([]model.Build, error) {
	return s.buildRepo.ListByUserID(ctx, ownerID)
}

// UpdateBuild applies a partial update after the ownership check. Validation
// failures and ownership failures return before any write, so a rejected
// request leaves the stored record untouched.
func (s *buildService) UpdateBuild(ctx context.Context, buildID, ownerID uuid.UUID, patch BuildPatch) (*model.Build, error) {
	build, err := s.buildRepo.FindByID(ctx, buildID)

	if err != nil {
		return nil, err
	}

	if build == nil {
		return nil, ErrBuildNotFound
	}

	if build.UserID != ownerID {
		return nil, ErrNotOwner
	}

	if patch.CarModel != nil && *patch.CarModel == "" {
		return nil, ErrCarModelRequired
	}
	if patch.Color != nil && *patch.Color == "" {
		return nil, ErrColorRequired
	}

	if patch.CarModel != nil {
		build.CarModel = *patch.CarModel
	}
	if patch.Color != nil {
		build.Color = *patch.Color
	}
	if patch.SelectedParts != nil {
		build.SelectedParts = *patch.SelectedParts
	}
	if patch.SelectedServices != nil {
		build.SelectedServices = *patch.SelectedServices
	}
	if patch.ModelName != nil {
		build.ModelName = *patch.ModelName
	}
	if patch.ModelImage != nil {
		build.ModelImage = *patch.ModelImage
	}
	if patch.TotalEstimatedCost != nil {
		build.TotalEstimatedCost = *patch.TotalEstimatedCost
	}
	if patch.Notes != nil {
		build.Notes = *patch.Notes
	}

	updatedBuild, err := s.buildRepo.Update(ctx, build)

	if err != nil {
		return nil, err
	}

	go s.publisher.PublishBuildUpdated(updatedBuild)

	return updatedBuild, nil
}

func (s *buildService) DeleteBuild(ctx context.Context, buildID, ownerID uuid.UUID) error {
	build, err := s.buildRepo.FindByID(ctx, buildID)

	if err != nil {
		return err
	}

	if build == nil {
		return ErrBuildNotFound
	}

	if build.UserID != ownerID {
		return ErrNotOwner
	}

	err = s.buildRepo.Delete(ctx, buildID)

	if err != nil {
		return err
	}

	go s.publisher.PublishBuildDeleted(buildID, ownerID)

	return nil
}
