package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CarModel is a catalog listing. The id is the stable external string id
// (e.g. "porsche-911-turbo-s") used by builds to reference the model.
type CarModel struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Brand        string    `db:"brand" json:"brand"`
	Category     string    `db:"category" json:"category"`
	Image        string    `db:"image" json:"image"`
	Price        int64     `db:"price" json:"price"`
	HP           *int      `db:"hp" json:"hp,omitempty"`
	CC           *int      `db:"cc" json:"cc,omitempty"`
	Speed        *string   `db:"speed" json:"speed,omitempty"`
	Cylinder     *int      `db:"cylinder" json:"cylinder,omitempty"`
	TotalRun     string    `db:"total_run" json:"totalRun"`
	Condition    string    `db:"condition" json:"condition"`
	Year         *int      `db:"year" json:"year,omitempty"`
	FuelType     *string   `db:"fuel_type" json:"fuelType,omitempty"`
	Transmission *string   `db:"transmission" json:"transmission,omitempty"`
	Description  string    `db:"description" json:"description"`
	ModelPath    string    `db:"model_path" json:"modelPath"`
	ListingType  string    `db:"listing_type" json:"listingType"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Features is a list of service feature bullet points, stored as JSONB.
type Features []string

func (f Features) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(f)
}

func (f *Features) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		*f = nil
		return nil
	}
	return errors.New("unsupported type for Features")
}

// Service is a modification service from the read-only catalog.
type Service struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description"`
	ShortDescription string    `db:"short_description" json:"shortDescription"`
	Price            int64     `db:"price" json:"price"`
	Duration         string    `db:"duration" json:"duration"`
	Category         string    `db:"category" json:"category"`
	Image            string    `db:"image" json:"image"`
	Features         Features  `db:"features" json:"features"`
	IsActive         bool      `db:"is_active" json:"isActive"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}
