package config

import (
	"fmt"
	"os"
	"time"

	"menucatalog/models"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Settings is the explicit runtime configuration handed to the services
// that need it (image fetcher, ingestion pipeline) instead of being read
// from ambient process state.
type Settings struct {
	Port         string
	MediaRoot    string // filesystem root for stored images
	MediaURL     string // URL prefix the media root is served under
	ImageTimeout time.Duration
	JWTSecret    string
}

// Load reads .env (when present) and builds the settings struct.
func Load() *Settings {
	_ = godotenv.Load()

	s := &Settings{
		Port:         getenv("PORT", "8080"),
		MediaRoot:    getenv("MEDIA_ROOT", "media"),
		MediaURL:     getenv("MEDIA_URL", "/media/"),
		ImageTimeout: 15 * time.Second,
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}
	if s.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET not set")
	}
	return s
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		logrus.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate applies the schema; split out so tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Category{},
		&models.ManualCategory{},
		&models.MenuItem{},
		&models.AllowedApp{},
	)
}
