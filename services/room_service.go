package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"guesthouse-backend/models"
)

// RoomService owns room inventory. Room.Status is derived state: regular
// updates cannot write it, only the occupancy reconciler and the explicit
// maintenance/cleaning override actions below.
type RoomService struct {
	DB        *gorm.DB
	Occupancy OccupancyService
}

func NewRoomService(db *gorm.DB, occupancy OccupancyService) *RoomService {
	return &RoomService{DB: db, Occupancy: occupancy}
}

type CreateRoomInput struct {
	RoomNumber    string
	Type          models.RoomType
	Floor         int
	PricePerNight decimal.Decimal
	MaxOccupancy  int
	Description   string
}

func (s *RoomService) Create(input CreateRoomInput) (*models.Room, error) {
	input.RoomNumber = strings.TrimSpace(input.RoomNumber)
	if input.RoomNumber == "" {
		return nil, &ValidationError{Message: "room number is required"}
	}
	if input.Type == "" {
		input.Type = models.RoomTypeStandard
	}
	if !input.Type.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid room type: %s", input.Type)}
	}
	if input.MaxOccupancy < 1 {
		return nil, &ValidationError{Message: "max occupancy must be at least 1"}
	}

	room := models.Room{
		RoomNumber:    input.RoomNumber,
		Type:          input.Type,
		Floor:         input.Floor,
		Status:        models.RoomStatusAvailable,
		PricePerNight: input.PricePerNight,
		MaxOccupancy:  input.MaxOccupancy,
		Description:   input.Description,
		IsActive:      true,
	}
	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateKeyError{Field: "roomNumber", Value: input.RoomNumber}
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("Beds").Order("room_number ASC").Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Beds").First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Room", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) GetByNumber(number string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Beds").First(&room, "room_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Room", ID: number}
		}
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	return &room, nil
}

type UpdateRoomInput struct {
	RoomNumber    *string
	Type          *models.RoomType
	Floor         *int
	PricePerNight *decimal.Decimal
	MaxOccupancy  *int
	Description   *string
	IsActive      *bool
}

func (s *RoomService) Update(id uuid.UUID, input UpdateRoomInput) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.RoomNumber != nil {
		number := strings.TrimSpace(*input.RoomNumber)
		if number == "" {
			return nil, &ValidationError{Message: "room number is required"}
		}
		room.RoomNumber = number
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid room type: %s", *input.Type)}
		}
		room.Type = *input.Type
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.PricePerNight != nil {
		room.PricePerNight = *input.PricePerNight
	}
	if input.MaxOccupancy != nil {
		if *input.MaxOccupancy < 1 {
			return nil, &ValidationError{Message: "max occupancy must be at least 1"}
		}
		room.MaxOccupancy = *input.MaxOccupancy
	}
	if input.Description != nil {
		room.Description = *input.Description
	}
	if input.IsActive != nil {
		room.IsActive = *input.IsActive
	}

	if err := s.DB.Save(room).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateKeyError{Field: "roomNumber", Value: room.RoomNumber}
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return room, nil
}

// Deactivate soft-deletes a room and its beds. Rejected while any active
// stay touches the room.
func (s *RoomService) Deactivate(id uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).First(&room, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Room", ID: id.String()}
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		active, err := countActiveStaysForRoom(tx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return &InvalidStateError{Entity: "Room " + room.RoomNumber, Status: "has active stays"}
		}

		if err := tx.Model(&room).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate room: %w", err)
		}
		// Cascading deactivation, not deletion.
		if err := tx.Model(&models.Bed{}).Where("room_id = ?", id).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate beds: %w", err)
		}
		return nil
	})
}

// SetOverride places a manual maintenance or cleaning hold on a room.
// Only valid while no active stay touches the room; the hold is sticky
// until ClearOverride.
func (s *RoomService) SetOverride(id uuid.UUID, status models.RoomStatus) (*models.Room, error) {
	if !status.IsManual() {
		return nil, &ValidationError{Message: fmt.Sprintf("status %s is not a manual override", status)}
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).First(&room, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Room", ID: id.String()}
			}
			return fmt.Errorf("failed to load room: %w", err)
		}
		if !room.IsActive {
			return &NotFoundError{Entity: "Room", ID: id.String()}
		}

		active, err := countActiveStaysForRoom(tx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return &InvalidStateError{Entity: "Room " + room.RoomNumber, Status: "has active stays"}
		}

		return tx.Model(&room).Updates(map[string]interface{}{
			"status":          status,
			"status_override": true,
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(id)
}

// ClearOverride lifts a manual hold and re-derives the room's status.
func (s *RoomService) ClearOverride(id uuid.UUID) (*models.Room, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).First(&room, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Room", ID: id.String()}
			}
			return fmt.Errorf("failed to load room: %w", err)
		}
		if err := tx.Model(&room).Update("status_override", false).Error; err != nil {
			return fmt.Errorf("failed to clear override: %w", err)
		}
		return s.Occupancy.Reconcile(tx, id, nil)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(id)
}

func countActiveStaysForRoom(tx *gorm.DB, roomID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&models.Stay{}).
		Where("room_id = ? AND status IN ?", roomID, models.ActiveStayStatuses).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active stays: %w", err)
	}
	return count, nil
}
