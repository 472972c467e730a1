package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/RividuPesara/apex-auto/internal/model"
	"github.com/RividuPesara/apex-auto/internal/service"
)

// fakeBuildRepo keeps builds in a map and records whether Update was called,
// so tests can assert that rejected requests never reach the write path.
type fakeBuildRepo struct {
	mu      sync.Mutex
	builds  map[uuid.UUID]model.Build
	updated bool
	deleted bool
}

func newFakeBuildRepo() *fakeBuildRepo {
	return &fakeBuildRepo{builds: make(map[uuid.UUID]model.Build)}
}

func (f *fakeBuildRepo) Create(ctx context.Context, build *model.Build) (*model.Build, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	build.ID = uuid.New()
	f.builds[build.ID] = *build
	return build, nil
}

func (f *fakeBuildRepo) FindByID(ctx context.Context, buildID uuid.UUID) (*model.Build, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.builds[buildID]
	if !ok {
		return nil, nil
	}
	copied := b
	return &copied, nil
}

func (f *fakeBuildRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Build, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Build{}
	for _, b := range f.builds {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBuildRepo) Update(ctx context.Context, build *model.Build) (*model.Build, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = true
	f.builds[build.ID] = *build
	return build, nil
}

func (f *fakeBuildRepo) Delete(ctx context.Context, buildID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = true
	delete(f.builds, buildID)
	return nil
}

func (f *fakeBuildRepo) get(id uuid.UUID) model.Build {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds[id]
}

type noopPublisher struct{}

func (noopPublisher) PublishBuildCreated(*model.Build) error   { return nil }
func (noopPublisher) PublishBuildUpdated(*model.Build) error   { return nil }
func (noopPublisher) PublishBuildDeleted(_, _ uuid.UUID) error { return nil }

func strPtr(s string) *string { return &s }

func TestCreateBuild_AppliesPartDefaults(t *testing.T) {
	repo := newFakeBuildRepo()
	svc := service.NewBuildService(repo, noopPublisher{})

	owner := uuid.New()
	build, err := svc.CreateBuild(context.Background(), owner, service.CreateBuildInput{
		CarModel: "porsche-911-turbo-s",
		Color:    "#FF6B35",
	})
	require.NoError(t, err)
	require.Equal(t, owner, build.UserID)
	require.Equal(t, model.DefaultWheels, build.SelectedParts.Wheels)
	require.Equal(t, model.DefaultSpoiler, build.SelectedParts.Spoiler)
	require.Equal(t, model.DefaultLights, build.SelectedParts.Lights)
	require.Equal(t, model.DefaultExhaust, build.SelectedParts.Exhaust)
}

func TestCreateBuild_RequiresModelAndColor(t *testing.T) {
	svc := service.NewBuildService(newFakeBuildRepo(), noopPublisher{})

	_, err := svc.CreateBuild(context.Background(), uuid.New(), service.CreateBuildInput{Color: "#FFF"})
	require.ErrorIs(t, err, service.ErrCarModelRequired)

	_, err = svc.CreateBuild(context.Background(), uuid.New(), service.CreateBuildInput{CarModel: "porsche-911-gt3"})
	require.ErrorIs(t, err, service.ErrColorRequired)
}

func TestUpdateBuild_NotFound(t *testing.T) {
	svc := service.NewBuildService(newFakeBuildRepo(), noopPublisher{})

	_, err := svc.UpdateBuild(context.Background(), uuid.New(), uuid.New(), service.BuildPatch{})
	require.ErrorIs(t, err, service.ErrBuildNotFound)
}

func TestUpdateBuild_OwnershipRejectedBeforeWrite(t *testing.T) {
	repo := newFakeBuildRepo()
	svc := service.NewBuildService(repo, noopPublisher{})

	owner := uuid.New()
	build, err := svc.CreateBuild(context.Background(), owner, service.CreateBuildInput{
		CarModel: "porsche-911-turbo-s",
		Color:    "#FF6B35",
		Notes:    "original",
	})
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = svc.UpdateBuild(context.Background(), build.ID, stranger, service.BuildPatch{
		Notes: strPtr("hijacked"),
	})
	require.ErrorIs(t, err, service.ErrNotOwner)
	require.False(t, repo.updated)
	require.Equal(t, "original", repo.get(build.ID).Notes)
}

func TestUpdateBuild_PartialPatchPreservesOtherFields(t *testing.T) {
	repo := newFakeBuildRepo()
	svc := service.NewBuildService(repo, noopPublisher{})

	owner := uuid.New()
	build, err := svc.CreateBuild(context.Background(), owner, service.CreateBuildInput{
		CarModel:           "porsche-911-turbo-s",
		Color:              "#FF6B35",
		SelectedServices:   model.ServiceIDs{"wheels", "tune"},
		TotalEstimatedCost: 780000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBuild(context.Background(), build.ID, owner, service.BuildPatch{
		Notes: strPtr("lowered stance"),
	})
	require.NoError(t, err)
	require.Equal(t, "lowered stance", updated.Notes)
	require.Equal(t, "#FF6B35", updated.Color)
	require.Equal(t, "porsche-911-turbo-s", updated.CarModel)
	require.Equal(t, int64(780000), updated.TotalEstimatedCost)
	require.Equal(t, model.ServiceIDs{"wheels", "tune"}, updated.SelectedServices)
}

func TestUpdateBuild_EmptyRequiredFieldRejectsWholePatch(t *testing.T) {
	repo := newFakeBuildRepo()
	svc := service.NewBuildService(repo, noopPublisher{})

	owner := uuid.New()
	build, err := svc.CreateBuild(context.Background(), owner, service.CreateBuildInput{
		CarModel: "porsche-911-turbo-s",
		Color:    "#FF6B35",
		Notes:    "keep me",
	})
	require.NoError(t, err)

	_, err = svc.UpdateBuild(context.Background(), build.ID, owner, service.BuildPatch{
		Color: strPtr(""),
		Notes: strPtr("should not land"),
	})
	require.ErrorIs(t, err, service.ErrColorRequired)

	_, err = svc.UpdateBuild(context.Background(), build.ID, owner, service.BuildPatch{
		CarModel: strPtr(""),
	})
	require.ErrorIs(t, err, service.ErrCarModelRequired)

	require.False(t, repo.updated)
	stored := repo.get(build.ID)
	require.Equal(t, "keep me", stored.Notes)
	require.Equal(t, "#FF6B35", stored.Color)
}

func TestDeleteBuild(t *testing.T) {
	repo := newFakeBuildRepo()
	svc := service.NewBuildService(repo, noopPublisher{})

	owner := uuid.New()
	build, err := svc.CreateBuild(context.Background(), owner, service.CreateBuildInput{
		CarModel: "porsche-911-gt3",
		Color:    "#000000",
	})
	require.NoError(t, err)

	err = svc.DeleteBuild(context.Background(), build.ID, uuid.New())
	require.ErrorIs(t, err, service.ErrNotOwner)
	require.False(t, repo.deleted)

	err = svc.DeleteBuild(context.Background(), build.ID, owner)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), build.ID)
	require.NoError(t, err)
	require.Nil(t, found)

	err = svc.DeleteBuild(context.Background(), build.ID, owner)
	require.ErrorIs(t, err, service.ErrBuildNotFound)
}
