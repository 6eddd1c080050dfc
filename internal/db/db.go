package db

import (
	"log/slog"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not open postgres connection")
	}
	return gdb, nil
}

// indexes that AutoMigrate cannot express through struct tags
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_categories_title_fts ON categories USING GIN (to_tsvector('english', title))`,
	`CREATE INDEX IF NOT EXISTS idx_projects_live_created ON projects (created_at DESC) WHERE is_deleted = false`,
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Category{},
		&models.User{},
		&models.Project{},
		&models.Application{},
		&models.HireRequest{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		return errors.Wrap(err, "automigrate")
	}

	for _, stmt := range indexes {
		if err := gdb.Exec(stmt).Error; err != nil {
			return errors.Wrap(err, "create index")
		}
	}
	slog.Info("database migrated")
	return nil
}
