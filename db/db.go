package db

import (
	"Gin_postgres_redis_booking_tool/models"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Credential{}, &models.AppConfig{}, &models.Reservation{}); err != nil {
		return err
	}

	// Pending queue and approved calendar are always year+status scoped.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_year_status_created
	  ON %s (year, status, created_at);
	`, models.ReservationTable, models.ReservationTable)).Error; err != nil {
		return err
	}

	// Seed the singleton config row so every read path can assume it exists.
	cfg := models.DefaultAppConfig(time.Now())
	if err := db.Where(models.AppConfig{ID: models.AppConfigID}).
		Attrs(models.AppConfig{ActiveYear: cfg.ActiveYear, SetupDone: false}).
		FirstOrCreate(&models.AppConfig{}).Error; err != nil {
		return err
	}

	return nil
}
