// Command migrate creates or updates the voucher designer database schema.
// It refuses to run if the built-in system field registry fails its
// self-test, so a broken catalog never reaches an environment.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mahmudadem/ERP03-sub002/internal/domain/designer"
	"github.com/mahmudadem/ERP03-sub002/internal/infrastructure/config"
	"github.com/mahmudadem/ERP03-sub002/internal/infrastructure/logger"
	"github.com/mahmudadem/ERP03-sub002/internal/infrastructure/persistence"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	var (
		logLevel string
		dryRun   bool
	)
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&dryRun, "dry-run", false, "Run the registry self-test and exit without touching the database")
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	registry := designer.NewRegistry()
	if violations := registry.SelfTest(); len(violations) > 0 {
		for _, v := range violations {
			log.Error("registry violation", zap.String("violation", v))
		}
		log.Fatal("system field registry failed its self-test", zap.Int("violations", len(violations)))
	}
	log.Info("system field registry self-test passed")

	if dryRun {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormlogger.Warn))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("migration completed",
		zap.String("database", cfg.Database.DBName),
		zap.String("host", cfg.Database.Host),
	)
}
