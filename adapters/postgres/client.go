// Package postgres implements the domain repositories on PostgreSQL via
// gorm.
package postgres

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
)

// NewClient opens a PostgreSQL connection from environment variables and
// migrates the voice schema.
func NewClient(log *zap.Logger) (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := getenv("DB_HOST", "localhost")
		port := getenv("DB_PORT", "5432")
		name := getenv("DB_NAME", "memorygrove")
		user := getenv("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, password, name, port)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.VoiceProfile{},
		&entities.TrainingSample{},
		&entities.SynthesisJob{},
		&entities.Memory{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate voice schema: %w", err)
	}

	log.Info("Connected to PostgreSQL")
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
