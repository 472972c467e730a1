package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/RividuPesara/apex-auto/internal/api"
	"github.com/RividuPesara/apex-auto/internal/events"
	"github.com/RividuPesara/apex-auto/internal/repository"
	"github.com/RividuPesara/apex-auto/internal/s3"
	"github.com/RividuPesara/apex-auto/internal/seed"
	"github.com/RividuPesara/apex-auto/internal/service"
	"github.com/RividuPesara/apex-auto/internal/tracing"
	_ "github.com/RividuPesara/apex-auto/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("FATAL ERROR: JWT_SECRET is not defined.")
	}

	api.SetupGlobalHandler("apex-auto")

	shutdownTracer, err := tracing.InitTracerProvider("apex-auto")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			handleMigrations()
			return
		case "seed":
			db := connectDB()
			defer db.Close()
			if err := seed.Run(context.Background(), db); err != nil {
				log.Fatalf("Failed to seed catalog: %v", err)
			}
			return
		}
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	userRepo := repository.NewPostgresUserRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)
	buildRepo := repository.NewPostgresBuildRepository(db)
	carModelRepo := repository.NewPostgresCarModelRepository(db)
	serviceRepo := repository.NewPostgresServiceRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo)
	buildService := service.NewBuildService(buildRepo, eventPublisher)
	catalogService := service.NewCatalogService(carModelRepo, serviceRepo)

	// Presigned uploads are optional, the API runs without object storage.
	presigner, err := s3.NewFilePresigner()
	if err != nil {
		log.Printf("WARNING: S3 presigner unavailable, image uploads disabled: %v", err)
		presigner = nil
	}

	authHandler := api.NewAuthHandler(authService)
	buildHandler := api.NewBuildHandler(buildService, presigner)
	catalogHandler := api.NewCatalogHandler(catalogService)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "apex-auto"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := app.Group("/api")

	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/profile", api.AuthMiddleware(), authHandler.GetProfile)

	apiGroup.Get("/car-models", catalogHandler.ListCarModels)
	apiGroup.Get("/car-models/:id", catalogHandler.GetCarModel)
	apiGroup.Get("/services", catalogHandler.ListServices)
	apiGroup.Get("/services/:id", catalogHandler.GetService)

	buildRoutes := apiGroup.Group("/builds")
	buildRoutes.Use(api.AuthMiddleware())
	buildRoutes.Post("/", buildHandler.CreateBuild)
	buildRoutes.Get("/", buildHandler.ListBuilds)
	buildRoutes.Get("/upload-url", buildHandler.GetUploadURL)
	buildRoutes.Put("/:id", buildHandler.UpdateBuild)
	buildRoutes.Delete("/:id", buildHandler.DeleteBuild)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5001"
	}

	log.Printf("Listening apex-auto on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	db, err := sqlx.Connect("pgx", databaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func databaseURL() string {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

func handleMigrations() {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
