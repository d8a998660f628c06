package database

import (
	"log"

	"github.com/railbook/railbook/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Train{},
		&models.FareClass{},
		&models.Passenger{},
		&models.Booking{},
		&models.BookingPassenger{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Seat counts must never go negative, no matter what reaches the row
	db.Exec(`
		ALTER TABLE fare_classes DROP CONSTRAINT IF EXISTS chk_seats_non_negative
	`)
	db.Exec(`
		ALTER TABLE fare_classes ADD CONSTRAINT chk_seats_non_negative CHECK (seats_available >= 0)
	`)

	return db
}
