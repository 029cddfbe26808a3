package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guesthouse-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Room{},
		&models.Bed{},
		&models.Guest{},
		&models.Stay{},
		&models.Payment{},
	))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestRoom(t *testing.T, db *gorm.DB, number string, maxOccupancy int) *models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber:    number,
		Type:          models.RoomTypeStandard,
		Status:        models.RoomStatusAvailable,
		PricePerNight: decimal.NewFromInt(50),
		MaxOccupancy:  maxOccupancy,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&room).Error)
	return &room
}

func createTestBed(t *testing.T, db *gorm.DB, roomID uuid.UUID, number string) *models.Bed {
	t.Helper()
	bed := models.Bed{
		BedNumber: number,
		Type:      models.BedTypeBunk,
		Status:    models.BedStatusAvailable,
		RoomID:    roomID,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&bed).Error)
	return &bed
}

func createTestGuest(t *testing.T, db *gorm.DB, email string) *models.Guest {
	t.Helper()
	guest := models.Guest{
		FirstName: "Test",
		LastName:  "Guest",
		Email:     email,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&guest).Error)
	return &guest
}

func newStayService(db *gorm.DB) *StayService {
	return NewStayService(db, OccupancyService{}, NewPaymentService(db))
}
