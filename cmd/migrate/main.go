package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	appmigrations "github.com/m04kA/SMC-ReservationService/migrations"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

// Использование:
//
//	migrate            применить все миграции
//	migrate down       откатить одну миграцию
//	migrate force <N>  принудительно выставить версию
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		log.Fatal("ping db: %v", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("db driver: %v", err)
	}

	srcDriver, err := iofs.New(appmigrations.FS, ".")
	if err != nil {
		log.Fatal("source driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.Fatal("create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	args := os.Args[1:]
	switch {
	case len(args) >= 2 && args[0] == "force":
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("invalid version: %v", err)
		}
		if err := m.Force(version); err != nil {
			log.Fatal("force version: %v", err)
		}
		log.Info("Forced migration version to %d", version)

	case len(args) >= 1 && args[0] == "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("migrate down: %v", err)
		}
		log.Info("Rolled back one migration")

	default:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("migrate up: %v", err)
		}
		log.Info("Migrations complete (db=%s)", cfg.Database.DBName)
	}
}
