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

// BedService manages the beds of dorm-style rooms. Bed.Status follows the
// same derived-state rules as Room.Status.
type BedService struct {
	DB        *gorm.DB
	Occupancy OccupancyService
}

func NewBedService(db *gorm.DB, occupancy OccupancyService) *BedService {
	return &BedService{DB: db, Occupancy: occupancy}
}

type CreateBedInput struct {
	BedNumber               string
	Type                    models.BedType
	AdditionalPricePerNight decimal.NullDecimal
}

func (s *BedService) Create(roomID uuid.UUID, input CreateBedInput) (*models.Bed, error) {
	input.BedNumber = strings.TrimSpace(input.BedNumber)
	if input.BedNumber == "" {
		return nil, &ValidationError{Message: "bed number is required"}
	}
	if input.Type == "" {
		input.Type = models.BedTypeSingle
	}
	if !input.Type.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid bed type: %s", input.Type)}
	}

	var room models.Room
	if err := s.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Room", ID: roomID.String()}
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	if !room.IsActive {
		return nil, &NotFoundError{Entity: "Room", ID: roomID.String()}
	}

	bed := models.Bed{
		BedNumber:               input.BedNumber,
		Type:                    input.Type,
		Status:                  models.BedStatusAvailable,
		AdditionalPricePerNight: input.AdditionalPricePerNight,
		RoomID:                  roomID,
		IsActive:                true,
	}
	if err := s.DB.Create(&bed).Error; err != nil {
		return nil, fmt.Errorf("failed to create bed: %w", err)
	}
	return &bed, nil
}

func (s *BedService) ListForRoom(roomID uuid.UUID) ([]models.Bed, error) {
	var room models.Room
	if err := s.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Room", ID: roomID.String()}
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	var beds []models.Bed
	if err := s.DB.Where("room_id = ?", roomID).Order("bed_number ASC").Find(&beds).Error; err != nil {
		return nil, fmt.Errorf("failed to list beds: %w", err)
	}
	return beds, nil
}

func (s *BedService) GetByID(id uuid.UUID) (*models.Bed, error) {
	var bed models.Bed
	if err := s.DB.First(&bed, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Bed", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to retrieve bed: %w", err)
	}
	return &bed, nil
}

type UpdateBedInput struct {
	BedNumber               *string
	Type                    *models.BedType
	AdditionalPricePerNight *decimal.NullDecimal
	IsActive                *bool
}

func (s *BedService) Update(id uuid.UUID, input UpdateBedInput) (*models.Bed, error) {
	bed, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.BedNumber != nil {
		number := strings.TrimSpace(*input.BedNumber)
		if number == "" {
			return nil, &ValidationError{Message: "bed number is required"}
		}
		bed.BedNumber = number
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid bed type: %s", *input.Type)}
		}
		bed.Type = *input.Type
	}
	if input.AdditionalPricePerNight != nil {
		bed.AdditionalPricePerNight = *input.AdditionalPricePerNight
	}
	if input.IsActive != nil {
		bed.IsActive = *input.IsActive
	}

	if err := s.DB.Save(bed).Error; err != nil {
		return nil, fmt.Errorf("failed to update bed: %w", err)
	}
	return bed, nil
}

// Deactivate soft-deletes a bed; rejected while any active stay is
// scoped to it.
func (s *BedService) Deactivate(id uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var bed models.Bed
		if err := lockForUpdate(tx).First(&bed, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Bed", ID: id.String()}
			}
			return fmt.Errorf("failed to load bed: %w", err)
		}

		var active int64
		err := tx.Model(&models.Stay{}).
			Where("bed_id = ? AND status IN ?", id, models.ActiveStayStatuses).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count active stays: %w", err)
		}
		if active > 0 {
			return &InvalidStateError{Entity: "Bed " + bed.BedNumber, Status: "has active stays"}
		}

		return tx.Model(&bed).Update("is_active", false).Error
	})
}

// SetMaintenance places a manual maintenance hold on a bed; valid only
// while no active stay is scoped to it.
func (s *BedService) SetMaintenance(id uuid.UUID) (*models.Bed, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var bed models.Bed
		if err := lockForUpdate(tx).First(&bed, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Bed", ID: id.String()}
			}
			return fmt.Errorf("failed to load bed: %w", err)
		}

		var active int64
		err := tx.Model(&models.Stay{}).
			Where("bed_id = ? AND status IN ?", id, models.ActiveStayStatuses).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count active stays: %w", err)
		}
		if active > 0 {
			return &InvalidStateError{Entity: "Bed " + bed.BedNumber, Status: "has active stays"}
		}

		return tx.Model(&bed).Updates(map[string]interface{}{
			"status":          models.BedStatusMaintenance,
			"status_override": true,
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(id)
}

// ClearOverride lifts a manual hold and re-derives the bed's status.
func (s *BedService) ClearOverride(id uuid.UUID) (*models.Bed, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var bed models.Bed
		if err := lockForUpdate(tx).First(&bed, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Bed", ID: id.String()}
			}
			return fmt.Errorf("failed to load bed: %w", err)
		}
		if err := tx.Model(&bed).Update("status_override", false).Error; err != nil {
			return fmt.Errorf("failed to clear override: %w", err)
		}
		bedID := bed.ID
		return s.Occupancy.Reconcile(tx, bed.RoomID, &bedID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(id)
}
