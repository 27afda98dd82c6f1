package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"log"
	"os"

	"wayfarer/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := Migrate(connectionPool); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return connectionPool
}

// Migrate keeps the schema in step with the models. Shared with the test
// harness, which runs it against an in-memory sqlite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Airport{},
		&db_models.City{},
		&db_models.Venue{},
		&db_models.VenueCondition{},
		&db_models.Review{},
		&db_models.Forecast{},
		&db_models.Itinerary{},
		&db_models.Account{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
