package Models

import (
	"fmt"

	"IranElaj/Config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDataBase opens the postgres connection and migrates the schema.
func ConnectDataBase(cfg Config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Cannot connect to database",
			zap.String("host", cfg.Host),
			zap.String("database", cfg.Name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("Connected to the database", zap.String("host", cfg.Host), zap.String("database", cfg.Name))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Users first, requests reference them, files reference requests.
	for _, model := range []interface{}{&User{}, &MedicalRequest{}, &RequestFile{}} {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}
	return nil
}
