package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBuildsTable, downCreateBuildsTable)
}

func upCreateBuildsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE builds (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  car_model TEXT NOT NULL,
	  color TEXT NOT NULL,
	  selected_parts JSONB NOT NULL DEFAULT '{}',
	  model_name TEXT NOT NULL DEFAULT '',
	  model_image TEXT NOT NULL DEFAULT '',
	  selected_services JSONB NOT NULL DEFAULT '[]',
	  total_estimated_cost BIGINT NOT NULL DEFAULT 0,
	  notes TEXT NOT NULL DEFAULT '',
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_builds_user_id_updated_at ON builds (user_id, updated_at DESC);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateBuildsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS builds;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
