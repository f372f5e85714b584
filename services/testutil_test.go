package services

import (
	"testing"
	"time"

	"venue-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// Pinned to one connection so the memory DB survives the pool, with
// foreign keys on so the payment cascade behaves like MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Inventory{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStaff(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	user := models.User{Name: "Test " + role, Email: role + "@venue.test", Password: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return user
}

func seedCustomer(t *testing.T, db *gorm.DB, name, phone string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Phone: phone}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedPayment(t *testing.T, db *gorm.DB, bookingID uint, amount float64, at time.Time) models.Payment {
	t.Helper()
	payment := models.Payment{
		BookingID:     bookingID,
		Amount:        amount,
		PaymentDate:   at,
		PaymentMethod: models.MethodCash,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return payment
}

// bookingInput is a valid baseline payload tests tweak as needed.
func bookingInput() BookingInput {
	return BookingInput{
		EventType:   "Wedding Reception",
		EventDate:   "2025-06-01",
		StartTime:   "18:00",
		EndTime:     "22:00",
		GuestCount:  150,
		TotalAmount: 150000,
		Notes:       "DJ requested",
	}
}
