package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"venue-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "venue_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the accounts and sample stock a fresh install
// needs. Idempotent: existing rows are left alone.
func SeedDatabase() {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		adminHash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
			return
		}
		admin := models.User{
			Name:     envOrDefault("ADMIN_NAME", "Admin User"),
			Email:    envOrDefault("ADMIN_EMAIL", "admin@partypalace.local"),
			Password: string(adminHash),
			Role:     models.RoleAdmin,
		}
		if err := DB.Create(&admin).Error; err != nil {
			log.Printf("warning: failed to create default admin: %v", err)
		} else {
			log.Println("Default admin seeded")
		}

		// Placeholder handler for customer-originated bookings. Its id
		// should match SELF_SERVE_USER_ID (defaults line up on a fresh DB).
		selfServeHash, err := bcrypt.GenerateFromPassword([]byte("self-serve"), bcrypt.DefaultCost)
		if err == nil {
			selfServe := models.User{
				Name:     "Self-Serve Portal",
				Email:    "portal@partypalace.local",
				Password: string(selfServeHash),
				Role:     models.RoleStaff,
			}
			if err := DB.Create(&selfServe).Error; err != nil {
				log.Printf("warning: failed to create self-serve user: %v", err)
			} else {
				log.Printf("Self-serve handler seeded with id %d", selfServe.ID)
			}
		}
	}

	var stockCount int64
	DB.Model(&models.Inventory{}).Count(&stockCount)
	if stockCount == 0 {
		items := []models.Inventory{
			{ItemName: "Plastic Chairs", Quantity: 200, Unit: "pcs", LowStockThreshold: 50},
			{ItemName: "Round Tables (10-seater)", Quantity: 30, Unit: "pcs", LowStockThreshold: 5},
			{ItemName: "Decorative String Lights", Quantity: 50, Unit: "sets", LowStockThreshold: 10},
			{ItemName: "Buffet Dinner Plate Set", Quantity: 500, Unit: "plates", LowStockThreshold: 100},
		}
		if err := DB.Create(&items).Error; err != nil {
			log.Printf("warning: failed to seed inventory: %v", err)
		} else {
			log.Println("Sample inventory seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// Parent tables before children so FKs resolve.
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Inventory{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
