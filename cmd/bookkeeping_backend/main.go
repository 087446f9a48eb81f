package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/finbooks/bookkeeping_app/internal/adapters/database/pgsql"
	"github.com/finbooks/bookkeeping_app/internal/adapters/database/sqlite"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	"github.com/finbooks/bookkeeping_app/internal/core/services"
	"github.com/finbooks/bookkeeping_app/internal/handlers"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
	"github.com/finbooks/bookkeeping_app/internal/platform/config"
	"github.com/finbooks/bookkeeping_app/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	accountRepo, journalRepo, closeDB, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()

	container := services.NewServicesContainer(accountRepo, journalRepo)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("db_driver", cfg.DatabaseDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories opens the configured backing store and returns the
// repository pair plus a cleanup function.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.AccountRepository, portsrepo.JournalRepository, func(), error) {
	switch cfg.DatabaseDriver {
	case "pgsql":
		pool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := runPostgresMigrations(cfg, logger); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return pgsql.NewAccountRepository(pool), pgsql.NewJournalRepository(pool), func() { database.ClosePgxPool(pool) }, nil

	default: // sqlite
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := sqlite.Migrate(db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		logger.Info("SQLite schema ready", slog.String("path", cfg.SQLitePath))
		return sqlite.NewAccountRepository(db), sqlite.NewJournalRepository(db), func() { db.Close() }, nil
	}
}

// runPostgresMigrations applies the versioned SQL migrations on a dedicated
// database/sql connection compatible with the pgx pool.
func runPostgresMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
