package database

import (
	"log"
	"os"
	"time"

	"go-gas-agent/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("Error: DB_DSN not found in .env file. Please configure your database.")
	}

	var err error

	// Wait for the DB to come up (docker-compose ordering)
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts:", err)
	}

	log.Println("Connected to MySQL")

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}
	log.Println("Database schema synced")
}

// Migrate runs AutoMigrate for every collection. Split out so test
// fixtures can run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Route{},
		&models.Session{},
		&models.Customer{},
		&models.Product{},
		&models.Sale{},
		&models.AdminUser{},
		&models.Patient{},
	)
}
