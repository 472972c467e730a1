package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/RividuPesara/apex-auto/internal/model"
)

type ServiceRepository interface {
	List(ctx context.Context) ([]model.Service, error)
	FindByID(ctx context.Context, id string) (*model.Service, error)
}

type postgresServiceRepository struct {
	db *sqlx.DB
}

func NewPostgresServiceRepository(db *sqlx.DB) ServiceRepository {
	return &postgresServiceRepository{db: db}
}

func (r *postgresServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	query := `SELECT * FROM services WHERE is_active = TRUE ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &services, query)

	if err != nil {
		return nil, err
	}

	if services == nil {
		services = []model.Service{}
	}

	return services, nil
}

func (r *postgresServiceRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	var s model.Service
	query := `SELECT * FROM services WHERE id = $1`
	err := r.db.GetContext(ctx, &s, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}
