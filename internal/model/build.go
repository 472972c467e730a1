package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Baseline part values applied when a build is created without them.
const (
	DefaultWheels  = "stock"
	DefaultSpoiler = "none"
	DefaultLights  = "halogen"
	DefaultExhaust = "stock"
)

// SelectedParts is the cosmetic part selection of a build, stored as a JSONB column.
type SelectedParts struct {
	Wheels  string `json:"wheels"`
	Spoiler string `json:"spoiler"`
	Lights  string `json:"lights"`
	Exhaust string `json:"exhaust"`
}

// WithDefaults fills empty part slots with the baseline values.
func (p SelectedParts) WithDefaults() SelectedParts {
	if p.Wheels == "" {
		p.Wheels = DefaultWheels
	}
	if p.Spoiler == "" {
		p.Spoiler = DefaultSpoiler
	}
	if p.Lights == "" {
		p.Lights = DefaultLights
	}
	if p.Exhaust == "" {
		p.Exhaust = DefaultExhaust
	}
	return p
}

func (p SelectedParts) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *SelectedParts) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = SelectedParts{}
		return nil
	}
	return errors.New("unsupported type for SelectedParts")
}

// ServiceIDs is the set of catalog service ids attached to a build.
// Order is insertion order and carries no semantic weight.
type ServiceIDs []string

// Contains reports membership of a service id.
func (s ServiceIDs) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s ServiceIDs) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (s *ServiceIDs) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	}
	return errors.New("unsupported type for ServiceIDs")
}

// Build is a saved car-customization draft owned by exactly one user.
// UserID is stamped at creation and never changes afterwards.
type Build struct {
	ID                 uuid.UUID     `db:"id" json:"id"`
	UserID             uuid.UUID     `db:"user_id" json:"userId"`
	CarModel           string        `db:"car_model" json:"carModel"`
	Color              string        `db:"color" json:"color"`
	SelectedParts      SelectedParts `db:"selected_parts" json:"selectedParts"`
	ModelName          string        `db:"model_name" json:"modelName"`
	ModelImage         string        `db:"model_image" json:"modelImage"`
	SelectedServices   ServiceIDs    `db:"selected_services" json:"selectedServices"`
	TotalEstimatedCost int64         `db:"total_estimated_cost" json:"totalEstimatedCost"`
	Notes              string        `db:"notes" json:"notes"`
	CreatedAt          time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updatedAt"`
}
