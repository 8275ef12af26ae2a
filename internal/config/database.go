package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-ranker/internal/models"
)

func InitDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("database connected", zap.String("driver", cfg.Database.Driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database migration completed")

	return db, nil
}

// Migrate creates the five tables the pipeline persists to.
func Migrate(db *gorm.DB) error {
	if err := db.Table(models.TableRawJD).AutoMigrate(&models.Document{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", models.TableRawJD, err)
	}
	if err := db.Table(models.TableRawResume).AutoMigrate(&models.Document{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", models.TableRawResume, err)
	}
	if err := db.AutoMigrate(
		&models.CriteriaSet{},
		&models.ScoreRecord{},
		&models.CandidateInfo{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func dialectorFor(cfg *Config) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case "", "sqlite":
		path := cfg.GetDatabaseDSN()
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database dir: %w", err)
			}
		}
		return sqlite.Open(path), nil
	case "postgres":
		return postgres.Open(cfg.GetDatabaseDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
