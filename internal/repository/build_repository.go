package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RividuPesara/apex-auto/internal/model"
)

type BuildRepository interface {
	Create(ctx context.Context, build *model.Build) (*model.Build, error)
	FindByID(ctx context.Context, buildID uuid.UUID) (*model.Build, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Build, error)
	Update(ctx context.Context, build *model.Build) (*model.Build, error)
	Delete(ctx context.Context, buildID uuid.UUID) error
}

type postgresBuildRepository struct {
	db *sqlx.DB
}

func NewPostgresBuildRepository(db *sqlx.DB) BuildRepository {
	return &postgresBuildRepository{db: db}
}

func (r *postgresBuildRepository) Create(ctx context.Context, build *model.Build) (*model.Build, error) {
	query := `
		INSERT INTO builds (user_id, car_model, color, selected_parts, model_name, model_image, selected_services, total_estimated_cost, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		build.UserID, build.CarModel, build.Color, build.SelectedParts,
		build.ModelName, build.ModelImage, build.SelectedServices,
		build.TotalEstimatedCost, build.Notes,
	)
	err := row.Scan(&build.ID, &build.CreatedAt, &build.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return build, nil
}

func (r *postgresBuildRepository) FindByID(ctx context.Context, buildID uuid.UUID) (*model.Build, error) {
	var build model.Build
	query := `SELECT * FROM builds WHERE id = $1`
	err := r.db.GetContext(ctx, &build, query, buildID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &build, nil
}

func (r *postgresBuildRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Build, error) {
	var builds []model.Build
	query := `SELECT * FROM builds WHERE user_id = $1 ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &builds, query, userID)

	if err != nil {
		return nil, err
	}

	if builds == nil {
		builds = []model.Build{}
	}

	return builds, nil
}

// Update rewrites every mutable column and advances updated_at.
// Ownership is checked in the service layer before this is called,
// so user_id is never part of the SET list.
func (r *postgresBuildRepository) Update(ctx context.Context, build *model.Build) (*model.Build, error) {
	query := `
		UPDATE builds
		SET car_model = $1, color = $2, selected_parts = $3, model_name = $4, model_image = $5, selected_services = $6, total_estimated_cost = $7, notes = $8, updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		build.CarModel, build.Color, build.SelectedParts,
		build.ModelName, build.ModelImage, build.SelectedServices,
		build.TotalEstimatedCost, build.Notes, build.ID,
	)
	err := row.Scan(&build.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return build, nil
}

func (r *postgresBuildRepository) Delete(ctx context.Context, buildID uuid.UUID) error {
	query := `DELETE FROM builds WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, buildID)
	return err
}
