package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/appointment"
	"github.com/clinic/clinic/internal/domain/cds"
	"github.com/clinic/clinic/internal/domain/immunization"
	"github.com/clinic/clinic/internal/domain/lab"
	"github.com/clinic/clinic/internal/domain/messaging"
	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/prescription"
	"github.com/clinic/clinic/internal/domain/visit"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/middleware"
	"github.com/clinic/clinic/internal/platform/storage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic EMR API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(orgCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			fmt.Printf("Running migrations on schema: %s\n", schema)

			count, err := migrator.Up(ctx, schema)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("schema", "org_default", "Target schema for migrations")
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx, schema)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("Migration status for schema: %s\n", schema)
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("schema", "org_default", "Target schema for migrations")
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Roll back by restoring the schema from a backup, or apply a forward migration.")
			return nil
		},
	})

	return cmd
}

func orgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage organizations",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new organization schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			dir, _ := cmd.Flags().GetString("dir")
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			fmt.Printf("Creating organization schema: org_%s\n", name)
			if err := db.CreateOrgSchema(ctx, pool, name, dir); err != nil {
				return err
			}
			fmt.Println("Organization created successfully.")
			return nil
		},
	}
	createCmd.Flags().String("name", "", "Organization identifier (alphanumeric)")
	createCmd.Flags().String("dir", "./migrations", "Path to migrations directory")

	cmd.AddCommand(createCmd)
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Draft store: Redis when configured, in-process otherwise.
	var draftBackend storage.Store
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		draftBackend = redisStore
		logger.Info().Msg("draft storage backed by redis")
	} else {
		draftBackend = storage.NewMemoryStore()
		logger.Warn().Msg("REDIS_URL not set; drafts are held in process memory only")
	}
	draftStore := visit.NewDraftStore(draftBackend, time.Duration(cfg.DraftTTLHours)*time.Hour)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "X-Org-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
			JWKSURL:  cfg.AuthJWKSURL,
		}))
	}

	// Organization middleware
	e.Use(db.OrgMiddleware(pool, cfg.DefaultOrg))

	// Health check
	e.GET("/health", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")

	// -- Register Domain Handlers --

	patientRepo := patient.NewRepoPG(pool)
	patientSvc := patient.NewService(patientRepo)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	apptRepo := appointment.NewRepoPG(pool)
	apptSvc := appointment.NewService(apptRepo)
	appointment.NewHandler(apptSvc).RegisterRoutes(apiV1)

	rxRepo := prescription.NewRepoPG(pool)
	rxSvc := prescription.NewService(rxRepo)
	prescription.NewHandler(rxSvc).RegisterRoutes(apiV1)

	labOrderRepo := lab.NewOrderRepoPG(pool)
	labResultRepo := lab.NewResultRepoPG(pool)
	labSvc := lab.NewService(labOrderRepo, labResultRepo)
	lab.NewHandler(labSvc).RegisterRoutes(apiV1)

	immRepo := immunization.NewRepoPG(pool)
	immSvc := immunization.NewService(immRepo)
	immunization.NewHandler(immSvc).RegisterRoutes(apiV1)

	visitRepo := visit.NewRepoPG(pool)
	visitSvc := visit.NewService(visitRepo, draftStore)
	visit.NewHandler(visitSvc, cfg.AutosaveSecs).RegisterRoutes(apiV1)

	cds.NewHandler().RegisterRoutes(apiV1)

	snapshots := messaging.NewSnapshotBuilder(
		messaging.PatientAdapter{Svc: patientSvc},
		messaging.AppointmentAdapter{Svc: apptSvc},
		messaging.PrescriptionAdapter{Svc: rxSvc},
		messaging.LabAdapter{Svc: labSvc},
		messaging.VisitAdapter{Svc: visitSvc},
	)
	msgRepo := messaging.NewRepoPG(pool)
	msgSvc := messaging.NewService(msgRepo, snapshots)
	messaging.NewHandler(msgSvc).RegisterRoutes(apiV1)

	// Start
	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
	if cfg.TLSEnabled {
		if err := e.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile); err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
		return nil
	}
	if err := e.Start(addr); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	return nil
}
