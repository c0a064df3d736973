package database

import (
	"fmt"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/config"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/database/migrations"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open abre a conexão com o Postgres e configura o pool
func Open(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not defined in the environment")
	}

	gormConfig := &gorm.Config{
		// Transações explícitas só onde o caso de uso pede
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 NewGormLogger(log, 500*time.Millisecond).LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	RegisterMiddlewares(db)

	return db, nil
}

// SetupDatabase abre a conexão e aplica migrações e índices
func SetupDatabase(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	db, err := Open(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := migrations.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := migrations.AddIndexes(db); err != nil {
		return nil, fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("database ready", logger.Int("max_open_conns", cfg.DBMaxOpenConns))
	return db, nil
}

// Close fecha o pool subjacente
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
