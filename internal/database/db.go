package database

import (
	"log"

	"tenderdesk/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models. Products go first so the SKU unique index
	// exists before orders reference it.
	err = db.AutoMigrate(
		&model.Product{},
		&model.Tender{},
		&model.Order{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
