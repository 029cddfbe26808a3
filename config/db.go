package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guesthouse-backend/models"
	"guesthouse-backend/utils"
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

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "guesthouse_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase creates a starter inventory on an empty database.
func SeedDatabase() {
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount > 0 {
		return
	}

	rooms := []models.Room{
		{RoomNumber: "101", Type: models.RoomTypeStandard, Floor: 1, Status: models.RoomStatusAvailable, PricePerNight: decimal.NewFromInt(50), MaxOccupancy: 2, IsActive: true},
		{RoomNumber: "102", Type: models.RoomTypeStandard, Floor: 1, Status: models.RoomStatusAvailable, PricePerNight: decimal.NewFromInt(50), MaxOccupancy: 2, IsActive: true},
		{RoomNumber: "201", Type: models.RoomTypeDeluxe, Floor: 2, Status: models.RoomStatusAvailable, PricePerNight: decimal.NewFromInt(80), MaxOccupancy: 3, IsActive: true},
		{RoomNumber: "202", Type: models.RoomTypeSuite, Floor: 2, Status: models.RoomStatusAvailable, PricePerNight: decimal.NewFromInt(120), MaxOccupancy: 4, IsActive: true},
		{RoomNumber: "301", Type: models.RoomTypeDorm, Floor: 3, Status: models.RoomStatusAvailable, PricePerNight: decimal.NewFromInt(20), MaxOccupancy: 6, IsActive: true},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}

	// Dorm room gets individually bookable beds.
	var dorm models.Room
	if err := DB.First(&dorm, "room_number = ?", "301").Error; err == nil {
		beds := make([]models.Bed, 0, 6)
		for i := 1; i <= 6; i++ {
			beds = append(beds, models.Bed{
				BedNumber: fmt.Sprintf("301-%d", i),
				Type:      models.BedTypeBunk,
				Status:    models.BedStatusAvailable,
				RoomID:    dorm.ID,
				IsActive:  true,
			})
		}
		if err := DB.Create(&beds).Error; err != nil {
			log.Printf("warning: failed to seed beds: %v", err)
		}
	}

	log.Println("Starter inventory seeded")
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

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Room{},
		&models.Bed{},
		&models.Guest{},
		&models.Stay{},
		&models.Payment{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
