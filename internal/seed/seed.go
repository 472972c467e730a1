// Package seed loads the reference catalog (car models and modification
// services) into the database. Seeding is idempotent: rows are upserted by
// their external id.
package seed

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/RividuPesara/apex-auto/internal/model"
)

func Run(ctx context.Context, db *sqlx.DB) error {
	modelQuery := `
		INSERT INTO car_models (id, name, brand, category, image, price, hp, cc, speed, cylinder, total_run, condition, year, fuel_type, transmission, description, model_path, listing_type)
		VALUES (:id, :name, :brand, :category, :image, :price, :hp, :cc, :speed, :cylinder, :total_run, :condition, :year, :fuel_type, :transmission, :description, :model_path, :listing_type)
		ON CONFLICT (id) DO UPDATE SET
		  name = EXCLUDED.name, brand = EXCLUDED.brand, category = EXCLUDED.category,
		  image = EXCLUDED.image, price = EXCLUDED.price, hp = EXCLUDED.hp, cc = EXCLUDED.cc,
		  speed = EXCLUDED.speed, cylinder = EXCLUDED.cylinder, total_run = EXCLUDED.total_run,
		  condition = EXCLUDED.condition, year = EXCLUDED.year, fuel_type = EXCLUDED.fuel_type,
		  transmission = EXCLUDED.transmission, description = EXCLUDED.description,
		  model_path = EXCLUDED.model_path, listing_type = EXCLUDED.listing_type,
		  updated_at = now()
	`

	for _, m := range CarModels() {
		if _, err := db.NamedExecContext(ctx, modelQuery, m); err != nil {
			return err
		}
	}

	serviceQuery := `
		INSERT INTO services (id, name, description, short_description, price, duration, category, image, features, is_active)
		VALUES (:id, :name, :description, :short_description, :price, :duration, :category, :image, :features, :is_active)
		ON CONFLICT (id) DO UPDATE SET
		  name = EXCLUDED.name, description = EXCLUDED.description,
		  short_description = EXCLUDED.short_description, price = EXCLUDED.price,
		  duration = EXCLUDED.duration, category = EXCLUDED.category,
		  image = EXCLUDED.image, features = EXCLUDED.features,
		  is_active = EXCLUDED.is_active, updated_at = now()
	`

	for _, s := range Services() {
		if _, err := db.NamedExecContext(ctx, serviceQuery, s); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d car models and %d services", len(CarModels()), len(Services()))

	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// CarModels is the marketplace inventory.
func CarModels() []model.CarModel {
	return []model.CarModel{
		{
			ID:           "porsche-911-turbo-s",
			Name:         "Porsche 911 Turbo S",
			Brand:        "Porsche",
			Category:     "sports",
			Image:        "/images/test2.webp",
			Price:        85000000,
			HP:           intPtr(641),
			CC:           intPtr(3745),
			Speed:        strPtr("8-Speed"),
			Cylinder:     intPtr(6),
			TotalRun:     "2,500 Km",
			Year:         intPtr(2024),
			FuelType:     strPtr("Petrol"),
			Transmission: strPtr("PDK Dual-Clutch"),
			Description:  "Ultimate sports car with twin-turbo flat-six, all-wheel drive, and legendary Porsche engineering. Track-ready performance with everyday usability.",
			ModelPath:    "/models/porshe.glb",
			ListingType:  "hot",
		},
		{
			ID:           "porsche-911-carrera",
			Name:         "Porsche 911 Carrera",
			Brand:        "Porsche",
			Category:     "sports",
			Image:        "/images/test3.webp",
			Price:        62000000,
			HP:           intPtr(385),
			CC:           intPtr(2981),
			Speed:        strPtr("8-Speed"),
			Cylinder:     intPtr(6),
			TotalRun:     "8,450 Km",
			Condition:    "Excellent",
			Year:         intPtr(2023),
			FuelType:     strPtr("Petrol"),
			Transmission: strPtr("PDK"),
			Description:  "Iconic rear-engine sports car with balanced handling, a refined flat-six, and timeless design.",
			ModelPath:    "/models/porshe.glb",
			ListingType:  "regular",
		},
		{
			ID:           "porsche-911-gt3",
			Name:         "Porsche 911 GT3",
			Brand:        "Porsche",
			Category:     "sports",
			Image:        "/images/test3.webp",
			Price:        95000000,
			HP:           intPtr(502),
			CC:           intPtr(3996),
			Speed:        strPtr("6-Speed"),
			Cylinder:     intPtr(6),
			TotalRun:     "3,200 Km",
			Condition:    "Great",
			Year:         intPtr(2024),
			FuelType:     strPtr("Petrol"),
			Transmission: strPtr("Manual"),
			Description:  "Track-focused 911 with high-revving naturally aspirated engine, rear-wheel steering, and aggressive aerodynamics.",
			ModelPath:    "/models/porshe.glb",
			ListingType:  "regular",
		},
		{
			ID:           "porsche-911-gt2",
			Name:         "Porsche 911 GT2",
			Brand:        "Porsche",
			Category:     "sports",
			Image:        "/images/test3.webp",
			Price:        120000000,
			HP:           intPtr(700),
			CC:           intPtr(3800),
			Speed:        strPtr("7-Speed"),
			Cylinder:     intPtr(6),
			TotalRun:     "500 Km",
			Condition:    "New",
			Year:         intPtr(2025),
			FuelType:     strPtr("Petrol"),
			Transmission: strPtr("PDK"),
			Description:  "Ultra-high-performance GT2 with lightweight components and track-focused setup.",
			ModelPath:    "/models/porshe.glb",
			ListingType:  "hot",
		},
	}
}

// Services is the modification service catalog.
func Services() []model.Service {
	return []model.Service{
		{
			ID:               "body-color",
			Name:             "Body Color Change",
			ShortDescription: "Premium repaint in any color",
			Description:      "Full exterior repaint with premium automotive paint. Includes surface preparation, primer, base coat, and ceramic clear coat.",
			Price:            750000,
			Category:         "exterior",
			Duration:         "1-2 hours",
			Image:            "/images/services/body-color.webp",
			Features:         model.Features{"Premium paint brands", "Ceramic clear coat", "Color matching", "5-year warranty"},
			IsActive:         true,
		},
		{
			ID:               "wheels",
			Name:             "Wheel Upgrade",
			ShortDescription: "Performance alloy and forged wheels",
			Description:      "Performance alloy or carbon fiber wheel replacement with hub-centric fitment and load-rated hardware.",
			Price:            540000,
			Category:         "exterior",
			Duration:         "1-2 hours",
			Image:            "/images/services/wheels.webp",
			Features:         model.Features{"Forged and flow-formed options", "Hub-centric fitment", "TPMS transfer", "Road force balancing"},
			IsActive:         true,
		},
		{
			ID:               "spoiler",
			Name:             "Spoiler Installation",
			ShortDescription: "Aerodynamic spoilers and wings",
			Description:      "Aerodynamic spoiler or GT wing fitting with reinforced mounting points and paint matching.",
			Price:            360000,
			Category:         "exterior",
			Duration:         "1-2 hours",
			Image:            "/images/services/spoiler.webp",
			Features:         model.Features{"Carbon fiber options", "Reinforced mounts", "Paint matched finish"},
			IsActive:         true,
		},
		{
			ID:               "headlights",
			Name:             "Headlight Upgrade",
			ShortDescription: "LED and Xenon conversions",
			Description:      "LED or Xenon HID headlight conversion with beam alignment and canbus-safe wiring.",
			Price:            270000,
			Category:         "lighting",
			Duration:         "1-2 hours",
			Image:            "/images/services/headlights.webp",
			Features:         model.Features{"LED and HID options", "Beam alignment", "Error-free wiring"},
			IsActive:         true,
		},
		{
			ID:               "exhaust",
			Name:             "Exhaust System",
			ShortDescription: "Performance exhaust systems",
			Description:      "Performance exhaust with enhanced sound and flow. Cat-back and axle-back configurations available.",
			Price:            660000,
			Category:         "performance",
			Duration:         "1-2 hours",
			Image:            "/images/services/exhaust.webp",
			Features:         model.Features{"Stainless construction", "Valved options", "Dyno verified gains"},
			IsActive:         true,
		},
		{
			ID:               "suspension",
			Name:             "Suspension Kit",
			ShortDescription: "Lowering springs and coilovers",
			Description:      "Lowering springs or coilover suspension upgrade with corner balancing and alignment.",
			Price:            450000,
			Category:         "performance",
			Duration:         "1-2 hours",
			Image:            "/images/services/suspension.webp",
			Features:         model.Features{"Adjustable damping", "Corner balancing", "Full alignment"},
			IsActive:         true,
		},
		{
			ID:               "interior-trim",
			Name:             "Interior Trim",
			ShortDescription: "Carbon and alcantara interiors",
			Description:      "Carbon fiber or alcantara interior trim upgrade, hand fitted to factory tolerances.",
			Price:            900000,
			Category:         "interior",
			Duration:         "1-2 hours",
			Image:            "/images/services/interior-trim.webp",
			Features:         model.Features{"Real carbon fiber", "Alcantara wrapping", "OEM fitment"},
			IsActive:         true,
		},
		{
			ID:               "tint",
			Name:             "Window Tinting",
			ShortDescription: "Ceramic window tint",
			Description:      "Professional ceramic window tint application with UV and heat rejection.",
			Price:            120000,
			Category:         "exterior",
			Duration:         "1-2 hours",
			Image:            "/images/services/tint.webp",
			Features:         model.Features{"Ceramic film", "99% UV rejection", "Lifetime warranty"},
			IsActive:         true,
		},
		{
			ID:               "wrap",
			Name:             "Vinyl Wrap",
			ShortDescription: "Full vehicle vinyl wraps",
			Description:      "Full vehicle vinyl wrap in custom color or design, including door jambs and panel removal.",
			Price:            1050000,
			Category:         "exterior",
			Duration:         "1-2 hours",
			Image:            "/images/services/wrap.webp",
			Features:         model.Features{"Premium cast vinyl", "Custom designs", "Paint protection"},
			IsActive:         true,
		},
		{
			ID:               "tune",
			Name:             "ECU Tune",
			ShortDescription: "Performance ECU remaps",
			Description:      "Performance ECU remap for increased power output with dyno verification.",
			Price:            240000,
			Category:         "performance",
			Duration:         "1-2 hours",
			Image:            "/images/services/tune.webp",
			Features:         model.Features{"Stage 1 and 2 maps", "Dyno verification", "Factory map backup"},
			IsActive:         true,
		},
	}
}
