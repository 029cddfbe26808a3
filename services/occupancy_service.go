package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guesthouse-backend/models"
)

// OccupancyService recomputes the derived occupancy status of rooms and
// beds from their current set of stays. A room is occupied while any stay
// on it is checked in; otherwise it is available. Manual maintenance/
// cleaning holds (StatusOverride) are sticky and never overwritten here.
type OccupancyService struct{}

func NewOccupancyService() OccupancyService {
	return OccupancyService{}
}

// Reconcile recomputes and persists the room's status, and the bed's if
// bedID is set. It must run inside the same transaction as the stay
// mutation that triggered it. Idempotent: reconciling twice with no
// intervening stay change is a no-op.
func (s OccupancyService) Reconcile(tx *gorm.DB, roomID uuid.UUID, bedID *uuid.UUID) error {
	if err := s.reconcileRoom(tx, roomID); err != nil {
		return err
	}
	if bedID != nil {
		return s.reconcileBed(tx, *bedID)
	}
	return nil
}

func (s OccupancyService) reconcileRoom(tx *gorm.DB, roomID uuid.UUID) error {
	var room models.Room
	if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "Room", ID: roomID.String()}
		}
		return fmt.Errorf("failed to load room for reconciliation: %w", err)
	}

	if room.StatusOverride {
		return nil
	}

	var checkedIn int64
	err := tx.Model(&models.Stay{}).
		Where("room_id = ? AND status = ?", roomID, models.StayStatusCheckedIn).
		Count(&checkedIn).Error
	if err != nil {
		return fmt.Errorf("failed to count checked-in stays for room %s: %w", roomID, err)
	}

	status := models.RoomStatusAvailable
	if checkedIn > 0 {
		status = models.RoomStatusOccupied
	}
	if room.Status == status {
		return nil
	}

	if err := tx.Model(&room).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update room %s status: %w", roomID, err)
	}
	return nil
}

func (s OccupancyService) reconcileBed(tx *gorm.DB, bedID uuid.UUID) error {
	var bed models.Bed
	if err := tx.First(&bed, "id = ?", bedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "Bed", ID: bedID.String()}
		}
		return fmt.Errorf("failed to load bed for reconciliation: %w", err)
	}

	if bed.StatusOverride {
		return nil
	}

	var checkedIn int64
	err := tx.Model(&models.Stay{}).
		Where("bed_id = ? AND status = ?", bedID, models.StayStatusCheckedIn).
		Count(&checkedIn).Error
	if err != nil {
		return fmt.Errorf("failed to count checked-in stays for bed %s: %w", bedID, err)
	}

	status := models.BedStatusAvailable
	if checkedIn > 0 {
		status = models.BedStatusOccupied
	}
	if bed.Status == status {
		return nil
	}

	if err := tx.Model(&bed).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update bed %s status: %w", bedID, err)
	}
	return nil
}
