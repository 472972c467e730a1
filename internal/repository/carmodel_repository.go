package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/RividuPesara/apex-auto/internal/model"
)

type CarModelRepository interface {
	List(ctx context.Context, search string, listingType string) ([]model.CarModel, error)
	FindByID(ctx context.Context, id string) (*model.CarModel, error)
}

type postgresCarModelRepository struct {
	db *sqlx.DB
}

func NewPostgresCarModelRepository(db *sqlx.DB) CarModelRepository {
	return &postgresCarModelRepository{db: db}
}

// List filters by case-insensitive substring on name or brand and by exact
// listing type when given, sorted brand then name.
func (r *postgresCarModelRepository) List(ctx context.Context, search string, listingType string) ([]model.CarModel, error) {
	baseQuery := `SELECT * FROM car_models`

	args := []interface{}{}
	argId := 1
	where := ""

	if search != "" {
		where += fmt.Sprintf(" WHERE (name ILIKE $%d OR brand ILIKE $%d)", argId, argId)
		args = append(args, "%"+search+"%")
		argId++
	}
	if listingType != "" {
		if where == "" {
			where += fmt.Sprintf(" WHERE listing_type = $%d", argId)
		} else {
			where += fmt.Sprintf(" AND listing_type = $%d", argId)
		}
		args = append(args, listingType)
	}

	baseQuery += where + " ORDER BY brand ASC, name ASC"

	var models []model.CarModel
	err := r.db.SelectContext(ctx, &models, baseQuery, args...)
	if err != nil {
		return nil, err
	}

	if models == nil {
		models = []model.CarModel{}
	}

	return models, nil
}

func (r *postgresCarModelRepository) FindByID(ctx context.Context, id string) (*model.CarModel, error) {
	var m model.CarModel
	query := `SELECT * FROM car_models WHERE id = $1`
	err := r.db.GetContext(ctx, &m, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &m, nil
}
