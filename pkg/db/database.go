package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glimmershop/catalog/internal/models"
)

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.SubCategory{},
		&models.Feature{},
		&models.Favorite{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return SeedFeatures(db)
}

// SeedFeatures installs the default feature set once, on an empty table.
func SeedFeatures(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Feature{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Feature{
		{
			Name:        "Product Management",
			Description: "Manage products in the store",
			Permissions: models.Permissions{Admin: true, Manager: true, User: false},
		},
		{
			Name:        "User Management",
			Description: "Manage user accounts and roles",
			Permissions: models.Permissions{Admin: true, Manager: false, User: false},
		},
		{
			Name:        "Favorites",
			Description: "Mark products as favorites",
			Permissions: models.Permissions{Admin: true, Manager: true, User: true},
		},
	}
	return db.Create(&defaults).Error
}
