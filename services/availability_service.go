package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guesthouse-backend/models"
)

// AvailabilityService answers whether a room or bed is free for a
// requested date interval. Intervals are half-open [checkIn, checkOut):
// a check-out on the same day as a new check-in does not overlap.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsAvailable reports whether the room (or, when bedID is set, the bed)
// can host a stay over [checkIn, checkOut). excludeStayID skips a stay
// when re-validating its own date change. Read-only.
func (s *AvailabilityService) IsAvailable(roomID uuid.UUID, bedID *uuid.UUID, checkIn, checkOut time.Time, excludeStayID *uuid.UUID) (bool, error) {
	return isAvailableTx(s.DB, roomID, bedID, checkIn, checkOut, excludeStayID)
}

// isAvailableTx is the transaction-scoped form used by the stay lifecycle
// so the check and the commit share one atomic unit.
func isAvailableTx(tx *gorm.DB, roomID uuid.UUID, bedID *uuid.UUID, checkIn, checkOut time.Time, excludeStayID *uuid.UUID) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, &InvalidRangeError{CheckIn: checkIn, CheckOut: checkOut}
	}

	var room models.Room
	if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, &NotFoundError{Entity: "Room", ID: roomID.String()}
		}
		return false, fmt.Errorf("failed to load room: %w", err)
	}
	if !room.IsActive {
		return false, &NotFoundError{Entity: "Room", ID: roomID.String()}
	}
	if room.Status == models.RoomStatusMaintenance || room.Status == models.RoomStatusCleaning {
		return false, nil
	}

	if bedID != nil {
		var bed models.Bed
		if err := tx.First(&bed, "id = ? AND room_id = ?", *bedID, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, &NotFoundError{Entity: "Bed", ID: bedID.String()}
			}
			return false, fmt.Errorf("failed to load bed: %w", err)
		}
		if !bed.IsActive {
			return false, &NotFoundError{Entity: "Bed", ID: bedID.String()}
		}
		if bed.Status == models.BedStatusMaintenance {
			return false, nil
		}
	}

	count, err := countOverlappingStays(tx, roomID, bedID, checkIn, checkOut, excludeStayID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// countOverlappingStays counts active stays whose interval overlaps the
// requested one under the half-open rule
// existing.checkIn < requested.checkOut AND existing.checkOut > requested.checkIn.
// Bed-scoped requests conflict with stays on the same bed and with
// whole-room stays (a stay without a bed occupies every bed).
func countOverlappingStays(tx *gorm.DB, roomID uuid.UUID, bedID *uuid.UUID, checkIn, checkOut time.Time, excludeStayID *uuid.UUID) (int64, error) {
	q := tx.Model(&models.Stay{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []models.StayStatus{models.StayStatusBooked, models.StayStatusCheckedIn}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)

	if bedID != nil {
		q = q.Where("bed_id = ? OR bed_id IS NULL", *bedID)
	}
	if excludeStayID != nil {
		q = q.Where("id <> ?", *excludeStayID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count overlapping stays: %w", err)
	}
	return count, nil
}

// ListAvailableRooms returns active, bookable rooms with no active stay
// overlapping [checkIn, checkOut), optionally filtered by room type.
func (s *AvailabilityService) ListAvailableRooms(checkIn, checkOut time.Time, roomType *models.RoomType) ([]models.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, &InvalidRangeError{CheckIn: checkIn, CheckOut: checkOut}
	}

	q := s.DB.Preload("Beds").
		Where("is_active = ?", true).
		Where("status = ?", models.RoomStatusAvailable).
		Where(`id NOT IN (
			SELECT room_id FROM stays
			WHERE status IN ? AND check_in_date < ? AND check_out_date > ?
		)`, []models.StayStatus{models.StayStatusBooked, models.StayStatusCheckedIn}, checkOut, checkIn).
		Order("room_number ASC")

	if roomType != nil {
		q = q.Where("type = ?", *roomType)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return rooms, nil
}
