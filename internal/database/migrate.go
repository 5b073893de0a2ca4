package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutriscope/backend/internal/models"
)

// RunMigrations creates or updates the activity log schema
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running auto-migration", zap.String("dialect", db.Dialector.Name()))
	if err := db.AutoMigrate(&models.SearchEvent{}); err != nil {
		return fmt.Errorf("failed to migrate search events: %w", err)
	}
	return nil
}
