package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/ink-agenda/internal/config"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

// DefaultStyles seeds the style lookup table on a fresh database.
var DefaultStyles = []string{
	"Aquarela",
	"Blackwork",
	"Fine Line",
	"Geométrico",
	"Minimalista",
	"Neotradicional",
	"Old School",
	"Oriental",
	"Pontilhismo",
	"Realismo",
	"Tribal",
}

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.GinMode == "release" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := SeedStyles(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Style{},
		&models.User{},
		&models.Client{},
		&models.Session{},
		&models.Photo{},
		&models.GeneratedImage{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// legacy rows written before the status column existed
	if err := db.Exec(`
        UPDATE sessions
        SET status = 'pending'
        WHERE status IS NULL OR status = ''
    `).Error; err != nil {
		return fmt.Errorf("failed to backfill session status: %w", err)
	}

	return nil
}

func SeedStyles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Style{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count styles: %w", err)
	}
	if count > 0 {
		return nil
	}

	styles := make([]models.Style, 0, len(DefaultStyles))
	for _, nome := range DefaultStyles {
		styles = append(styles, models.Style{Nome: nome})
	}

	if err := db.Create(&styles).Error; err != nil {
		return fmt.Errorf("failed to seed styles: %w", err)
	}

	logrus.WithField("count", len(styles)).Info("seeded tattoo styles")
	return nil
}
