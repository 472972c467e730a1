package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCatalogTables, downCreateCatalogTables)
}

func upCreateCatalogTables(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE car_models (
	  id TEXT PRIMARY KEY,
	  name TEXT NOT NULL,
	  brand TEXT NOT NULL,
	  category TEXT NOT NULL DEFAULT 'sports',
	  image TEXT NOT NULL DEFAULT '',
	  price BIGINT NOT NULL DEFAULT 0,
	  hp INT,
	  cc INT,
	  speed TEXT,
	  cylinder INT,
	  total_run TEXT NOT NULL DEFAULT '',
	  condition TEXT NOT NULL DEFAULT '',
	  year INT,
	  fuel_type TEXT,
	  transmission TEXT,
	  description TEXT NOT NULL DEFAULT '',
	  model_path TEXT NOT NULL DEFAULT '/models/porshe.glb',
	  listing_type TEXT NOT NULL DEFAULT '',
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE TABLE services (
	  id TEXT PRIMARY KEY,
	  name TEXT NOT NULL,
	  description TEXT NOT NULL,
	  short_description TEXT NOT NULL DEFAULT '',
	  price BIGINT NOT NULL,
	  duration TEXT NOT NULL DEFAULT '1-2 hours',
	  category TEXT NOT NULL,
	  image TEXT NOT NULL DEFAULT '',
	  features JSONB NOT NULL DEFAULT '[]',
	  is_active BOOLEAN NOT NULL DEFAULT TRUE,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateCatalogTables(ctx context.Context, tx *sql.Tx) error {
	query := `
	DROP TABLE IF EXISTS services;
	DROP TABLE IF EXISTS car_models;
	`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
